package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/vdeep/craftmart/internal/domain/errors"
	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/domain/repository"
)

const pgUniqueViolation = "23505"

// Pool is the subset of pgxpool.Pool the storage uses; pgxmock implements it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type cartRepository struct {
	storage *Storage
}

type subscriptionRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{storage: s}
}

func (s *Storage) Subscriptions() repository.SubscriptionRepository {
	return &subscriptionRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            phone TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id BIGSERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL DEFAULT 0,
            sale_price DOUBLE PRECISION,
            version TEXT NOT NULL DEFAULT '',
            file_type TEXT NOT NULL DEFAULT '',
            fonts_included BOOLEAN NOT NULL DEFAULT FALSE,
            thumb_name TEXT NOT NULL DEFAULT '',
            thumb_mime TEXT NOT NULL DEFAULT '',
            thumb_size BIGINT NOT NULL DEFAULT 0,
            thumb_ref TEXT NOT NULL DEFAULT '',
            thumb_view_link TEXT NOT NULL DEFAULT '',
            thumb_download_link TEXT NOT NULL DEFAULT '',
            source_name TEXT NOT NULL DEFAULT '',
            source_mime TEXT NOT NULL DEFAULT '',
            source_size BIGINT NOT NULL DEFAULT 0,
            source_ref TEXT NOT NULL DEFAULT '',
            source_view_link TEXT NOT NULL DEFAULT '',
            source_download_link TEXT NOT NULL DEFAULT '',
            rating DOUBLE PRECISION NOT NULL DEFAULT 0,
            num_reviews INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL DEFAULT 0,
            product_id BIGINT NOT NULL,
            customer_name TEXT NOT NULL,
            payment_ref TEXT NOT NULL,
            amount DOUBLE PRECISION NOT NULL,
            evidence_ref TEXT,
            evidence_view_link TEXT,
            evidence_download_link TEXT,
            evidence_mime TEXT,
            status TEXT NOT NULL DEFAULT 'Pending',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            approved_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS cart_items (
            user_id BIGINT NOT NULL,
            product_id BIGINT NOT NULL,
            added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (user_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS reviews (
            id BIGSERIAL PRIMARY KEY,
            product_id BIGINT NOT NULL,
            user_id BIGINT NOT NULL,
            name TEXT NOT NULL DEFAULT '',
            rating INTEGER NOT NULL,
            comment TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (product_id, user_id)
        )`,
		`CREATE TABLE IF NOT EXISTS push_subscriptions (
            id BIGSERIAL PRIMARY KEY,
            endpoint TEXT UNIQUE NOT NULL,
            p256dh TEXT NOT NULL,
            auth TEXT NOT NULL,
            user_id BIGINT NOT NULL DEFAULT 0,
            role TEXT NOT NULL DEFAULT 'user',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		// One live Pending order per (user, product): this is what stops two
		// concurrent checkouts from both inserting.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_pending ON orders(user_id, product_id) WHERE status = 'Pending'`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_pair ON orders(user_id, product_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (name, email, phone, password_hash) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	stored := *user
	err := r.storage.pool.QueryRow(ctx, query, user.Name, user.Email, user.Phone, user.PasswordHash).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, name, email, phone, password_hash, created_at FROM users WHERE email=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, name, email, phone, password_hash, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- ProductRepository implementation ---

const productColumns = `id, title, description, price, sale_price, version, file_type, fonts_included,
       thumb_name, thumb_mime, thumb_size, thumb_ref, thumb_view_link, thumb_download_link,
       source_name, source_mime, source_size, source_ref, source_view_link, source_download_link,
       rating, num_reviews, created_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.SalePrice, &p.Version, &p.FileType, &p.FontsIncluded,
		&p.Thumbnail.OriginalName, &p.Thumbnail.MimeType, &p.Thumbnail.Size, &p.Thumbnail.Ref, &p.Thumbnail.ViewLink, &p.Thumbnail.DownloadLink,
		&p.SourceFile.OriginalName, &p.SourceFile.MimeType, &p.SourceFile.Size, &p.SourceFile.Ref, &p.SourceFile.ViewLink, &p.SourceFile.DownloadLink,
		&p.Rating, &p.NumReviews, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (
            title, description, price, sale_price, version, file_type, fonts_included,
            thumb_name, thumb_mime, thumb_size, thumb_ref, thumb_view_link, thumb_download_link,
            source_name, source_mime, source_size, source_ref, source_view_link, source_download_link
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
        RETURNING id, created_at`
	stored := *product
	err := r.storage.pool.QueryRow(ctx, query,
		product.Title, product.Description, product.Price, product.SalePrice, product.Version, product.FileType, product.FontsIncluded,
		product.Thumbnail.OriginalName, product.Thumbnail.MimeType, product.Thumbnail.Size, product.Thumbnail.Ref, product.Thumbnail.ViewLink, product.Thumbnail.DownloadLink,
		product.SourceFile.OriginalName, product.SourceFile.MimeType, product.SourceFile.Size, product.SourceFile.Ref, product.SourceFile.ViewLink, product.SourceFile.DownloadLink,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	product, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter, page model.PageRequest) ([]model.Product, int64, error) {
	order := "created_at DESC"
	if filter.Sort == repository.SortOldest {
		order = "created_at ASC"
	}
	search := "%" + filter.Search + "%"

	var total int64
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE title ILIKE $1`, search).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE title ILIKE $1 ORDER BY ` + order + ` LIMIT $2 OFFSET $3`
	rows, err := r.storage.pool.Query(ctx, query, search, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) AddReview(ctx context.Context, review *model.Review) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insert = `INSERT INTO reviews (product_id, user_id, name, rating, comment) VALUES ($1,$2,$3,$4,$5)`
		if _, err := tx.Exec(ctx, insert, review.ProductID, review.UserID, review.Name, review.Rating, review.Comment); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return domainErrors.ErrAlreadyReviewed
			}
			return err
		}

		const refresh = `UPDATE products SET
                num_reviews = (SELECT COUNT(*) FROM reviews WHERE product_id=$1),
                rating = (SELECT AVG(rating) FROM reviews WHERE product_id=$1)
            WHERE id=$1`
		if _, err := tx.Exec(ctx, refresh, review.ProductID); err != nil {
			return err
		}
		return nil
	})
}

func (r *productRepository) HasReview(ctx context.Context, productID, userID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM reviews WHERE product_id=$1 AND user_id=$2)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, productID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, product_id, customer_name, payment_ref, amount,
       evidence_ref, evidence_view_link, evidence_download_link, evidence_mime,
       status, created_at, approved_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var ref, viewLink, downLink, mime *string
	err := row.Scan(
		&o.ID, &o.UserID, &o.ProductID, &o.CustomerName, &o.PaymentRef, &o.Amount,
		&ref, &viewLink, &downLink, &mime,
		&o.Status, &o.CreatedAt, &o.ApprovedAt,
	)
	if err != nil {
		return nil, err
	}
	if ref != nil {
		o.Evidence = &model.PaymentEvidence{Ref: *ref}
		if viewLink != nil {
			o.Evidence.ViewLink = *viewLink
		}
		if downLink != nil {
			o.Evidence.DownloadLink = *downLink
		}
		if mime != nil {
			o.Evidence.MimeType = *mime
		}
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (
            user_id, product_id, customer_name, payment_ref, amount,
            evidence_ref, evidence_view_link, evidence_download_link, evidence_mime, status
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, status, created_at`
	var ref, viewLink, downLink, mime *string
	if order.Evidence != nil {
		ref = &order.Evidence.Ref
		viewLink = &order.Evidence.ViewLink
		downLink = &order.Evidence.DownloadLink
		mime = &order.Evidence.MimeType
	}

	stored := *order
	err := r.storage.pool.QueryRow(ctx, query,
		order.UserID, order.ProductID, order.CustomerName, order.PaymentRef, order.Amount,
		ref, viewLink, downLink, mime, model.OrderStatusPending,
	).Scan(&stored.ID, &stored.Status, &stored.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) LatestByUserProduct(ctx context.Context, userID, productID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 AND product_id=$2 ORDER BY created_at DESC LIMIT 1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, userID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) listPage(ctx context.Context, countQuery, query string, args []any, page model.PageRequest) ([]model.Order, int64, error) {
	var total int64
	if err := r.storage.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, page.Limit, page.Offset())
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, page model.PageRequest) ([]model.Order, int64, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.listPage(ctx, `SELECT COUNT(*) FROM orders WHERE user_id=$1`, query, []any{userID}, page)
}

func (r *orderRepository) ListAll(ctx context.Context, page model.PageRequest) ([]model.Order, int64, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.listPage(ctx, `SELECT COUNT(*) FROM orders`, query, nil, page)
}

func (r *orderRepository) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus, approvedAt *time.Time) (*model.Order, error) {
	// Rejected is terminal for approval purposes; COALESCE keeps an earlier
	// approval timestamp when rejecting.
	query := `UPDATE orders SET status=$2, approved_at=COALESCE($3, approved_at)
              WHERE id=$1 AND status <> 'Rejected'
              RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID, status, approvedAt))
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	current, getErr := r.GetByID(ctx, orderID)
	if getErr != nil {
		return nil, getErr
	}
	if status == model.OrderStatusRejected {
		// Already Rejected; the requested state holds.
		return current, nil
	}
	return nil, domainErrors.ErrOrderImmutable
}

func (r *orderRepository) HasApproved(ctx context.Context, userID, productID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM orders WHERE user_id=$1 AND product_id=$2 AND status='Approved')`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, userID, productID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// --- CartRepository implementation ---

func (r *cartRepository) Add(ctx context.Context, userID, productID int64) error {
	const query = `INSERT INTO cart_items (user_id, product_id) VALUES ($1, $2)`
	if _, err := r.storage.pool.Exec(ctx, query, userID, productID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domainErrors.ErrAlreadyInCart
		}
		return err
	}
	return nil
}

func (r *cartRepository) List(ctx context.Context, userID int64, page model.PageRequest) ([]model.CartItem, int64, error) {
	var total int64
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM cart_items WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `SELECT product_id, added_at FROM cart_items WHERE user_id=$1 ORDER BY added_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.storage.pool.Query(ctx, query, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.CartItem
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ProductID, &item.AddedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *cartRepository) Remove(ctx context.Context, userID, productID int64) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1 AND product_id=$2`, userID, productID)
	return err
}

// --- SubscriptionRepository implementation ---

func (r *subscriptionRepository) Upsert(ctx context.Context, sub *model.PushSubscription) error {
	const query = `INSERT INTO push_subscriptions (endpoint, p256dh, auth, user_id, role)
                   VALUES ($1, $2, $3, $4, $5)
                   ON CONFLICT (endpoint) DO UPDATE
                   SET p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth,
                       user_id = EXCLUDED.user_id, role = EXCLUDED.role`
	_, err := r.storage.pool.Exec(ctx, query, sub.Endpoint, sub.P256DH, sub.Auth, sub.UserID, sub.Role)
	return err
}

func (r *subscriptionRepository) listSubscriptions(ctx context.Context, query string, args ...any) ([]model.PushSubscription, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PushSubscription
	for rows.Next() {
		var sub model.PushSubscription
		if err := rows.Scan(&sub.ID, &sub.Endpoint, &sub.P256DH, &sub.Auth, &sub.UserID, &sub.Role, &sub.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *subscriptionRepository) ListByRole(ctx context.Context, role model.SubscriberRole) ([]model.PushSubscription, error) {
	const query = `SELECT id, endpoint, p256dh, auth, user_id, role, created_at FROM push_subscriptions WHERE role=$1`
	return r.listSubscriptions(ctx, query, role)
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]model.PushSubscription, error) {
	const query = `SELECT id, endpoint, p256dh, auth, user_id, role, created_at FROM push_subscriptions WHERE user_id=$1`
	return r.listSubscriptions(ctx, query, userID)
}

func (r *subscriptionRepository) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM push_subscriptions WHERE endpoint=$1`, endpoint)
	return err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
