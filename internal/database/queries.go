package database

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (number, customer_id, vendor_id, status, payment_status,
			   subtotal, delivery_fee, tax_amount, final_amount,
			   delivery_address, special_instructions, estimated_delivery_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	InsertOrderLineSQL = `
		INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, line_total, special_instructions)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	InsertOrderStatusLogSQL = `
		INSERT INTO order_status_log (order_id, status, changed_by, notes)
		VALUES ($1, $2, $3, $4)`

	UpdateOrderStatusSQL = `
		UPDATE orders
		SET status = $1, actual_delivery_time = COALESCE($2, actual_delivery_time), updated_at = NOW()
		WHERE id = $3`

	UpdatePaymentStatusSQL = `
		UPDATE orders SET payment_status = $1, updated_at = NOW()
		WHERE id = $2`

	GetOrderSQL = `
		SELECT id, number, customer_id, vendor_id, status, payment_status,
			   subtotal, delivery_fee, tax_amount, final_amount,
			   delivery_address, special_instructions,
			   created_at, updated_at, estimated_delivery_time, actual_delivery_time
		FROM orders WHERE id = $1`

	GetOrderByNumberSQL = `
		SELECT id, number, customer_id, vendor_id, status, payment_status,
			   subtotal, delivery_fee, tax_amount, final_amount,
			   delivery_address, special_instructions,
			   created_at, updated_at, estimated_delivery_time, actual_delivery_time
		FROM orders WHERE number = $1`

	GetOrderLinesSQL = `
		SELECT oi.id, oi.order_id, oi.menu_item_id, mi.name, oi.quantity,
			   oi.unit_price, oi.line_total, oi.special_instructions
		FROM order_items oi
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id = $1
		ORDER BY oi.id ASC`

	ListCustomerOrdersSQL = `
		SELECT id, number, customer_id, vendor_id, status, payment_status,
			   subtotal, delivery_fee, tax_amount, final_amount,
			   delivery_address, special_instructions,
			   created_at, updated_at, estimated_delivery_time, actual_delivery_time
		FROM orders WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	ListVendorOrdersSQL = `
		SELECT id, number, customer_id, vendor_id, status, payment_status,
			   subtotal, delivery_fee, tax_amount, final_amount,
			   delivery_address, special_instructions,
			   created_at, updated_at, estimated_delivery_time, actual_delivery_time
		FROM orders WHERE vendor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	GetOrderStatusHistorySQL = `
		SELECT status, changed_by, changed_at, notes
		FROM order_status_log
		WHERE order_id = $1
		ORDER BY changed_at ASC`

	GetNextOrderSequenceSQL = `
		SELECT COALESCE(MAX(CAST(SUBSTRING(number FROM 'ORD_[0-9]{8}_([0-9]{3})') AS INTEGER)), 0) + 1
		FROM orders
		WHERE number LIKE $1`
)

// Menu and vendor queries
const (
	GetMenuItemSQL = `
		SELECT id, vendor_id, name, description, price, category,
			   is_available, is_vegetarian, is_vegan, is_spicy, created_at
		FROM menu_items WHERE id = $1`

	GetVendorFeesSQL = `
		SELECT user_id, business_name, delivery_fee
		FROM vendor_profiles WHERE user_id = $1`
)

// Analytics queries
const (
	GetVendorOrdersInRangeSQL = `
		SELECT id, number, customer_id, vendor_id, status, payment_status,
			   subtotal, delivery_fee, tax_amount, final_amount,
			   delivery_address, special_instructions,
			   created_at, updated_at, estimated_delivery_time, actual_delivery_time
		FROM orders
		WHERE vendor_id = $1 AND created_at BETWEEN $2 AND $3
		ORDER BY created_at ASC`

	GetVendorOrderLinesSQL = `
		SELECT oi.id, oi.order_id, oi.menu_item_id, mi.name, oi.quantity,
			   oi.unit_price, oi.line_total, oi.special_instructions
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE o.vendor_id = $1
		ORDER BY oi.id ASC`
)

// Account queries
const (
	InsertUserSQL = `
		INSERT INTO users (email, password_hash, full_name, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	InsertCustomerProfileSQL = `
		INSERT INTO customer_profiles (user_id, delivery_address, city, postal_code)
		VALUES ($1, $2, $3, $4)`

	InsertVendorProfileSQL = `
		INSERT INTO vendor_profiles (user_id, business_name, business_address, city, cuisine_type, delivery_fee)
		VALUES ($1, $2, $3, $4, $5, $6)`

	GetUserByEmailSQL = `
		SELECT id, email, password_hash, full_name, phone, role, created_at
		FROM users WHERE email = $1`
)
