package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/catalog"
	"slotbook/internal/domain/notification"
	"slotbook/internal/domain/user"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// repoErr classifies a driver error into a repository error kind.
func repoErr(msg string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
	case hasPgCode(err, pgErrCodeUniqueViolation):
		return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
	default:
		return infra.WrapRepoErr(msg, err)
	}
}

func requireAffected(affected int64, msg string) error {
	if affected == 0 {
		return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
	}
	return nil
}

// ---- users ----

const userColumns = `id, email, password_hash, business_name, owner_name, phone, business_type,
	role, is_active, settings, last_login_at, created_at, updated_at`

type userRepo struct {
	db dbtx
}

func (r *userRepo) Create(ctx context.Context, acc *user.Account) error {
	settings, err := json.Marshal(acc.Settings())
	if err != nil {
		return infra.WrapRepoErr("failed to encode settings", err)
	}
	p := acc.Profile()
	_, err = r.db.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		acc.ID(), acc.Email().Value(), acc.PasswordHash(), p.BusinessName, p.OwnerName, p.Phone, p.BusinessType,
		acc.Role().String(), acc.IsActive(), settings, timestamptzPtr(acc.LastLoginAt()),
		pgconv.Timestamptz(acc.CreatedAt()), pgconv.Timestamptz(acc.UpdatedAt()),
	)
	if err != nil {
		return repoErr("failed to create user", err)
	}
	return nil
}

func (r *userRepo) Update(ctx context.Context, acc *user.Account) error {
	settings, err := json.Marshal(acc.Settings())
	if err != nil {
		return infra.WrapRepoErr("failed to encode settings", err)
	}
	p := acc.Profile()
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET
			email = $2, password_hash = $3, business_name = $4, owner_name = $5, phone = $6,
			business_type = $7, role = $8, is_active = $9, settings = $10, last_login_at = $11,
			updated_at = $12
		WHERE id = $1`,
		acc.ID(), acc.Email().Value(), acc.PasswordHash(), p.BusinessName, p.OwnerName, p.Phone,
		p.BusinessType, acc.Role().String(), acc.IsActive(), settings, timestamptzPtr(acc.LastLoginAt()),
		pgconv.Timestamptz(acc.UpdatedAt()),
	)
	if err != nil {
		return repoErr("failed to update user", err)
	}
	return requireAffected(tag.RowsAffected(), "user not found")
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row, "user not found")
}

func (r *userRepo) FindActiveByEmail(ctx context.Context, email string) (*user.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower(trim($1)) AND is_active`, email)
	return scanUser(row, "user not found")
}

func scanUser(row pgx.Row, notFound string) (*user.Account, error) {
	var (
		id                   uuid.UUID
		email, hash, role    string
		profile              user.Profile
		active               bool
		rawSettings          []byte
		lastLogin            pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&id, &email, &hash, &profile.BusinessName, &profile.OwnerName, &profile.Phone,
		&profile.BusinessType, &role, &active, &rawSettings, &lastLogin, &createdAt, &updatedAt)
	if err != nil {
		return nil, repoErr(notFound, err)
	}

	var settings user.Settings
	if err := json.Unmarshal(rawSettings, &settings); err != nil {
		return nil, infra.WrapRepoErr("stored settings are invalid", err)
	}
	parsedEmail, err := user.NewEmail(email)
	if err != nil {
		return nil, infra.WrapRepoErr("stored email is invalid", err)
	}
	parsedRole, err := user.NewRole(role)
	if err != nil {
		return nil, infra.WrapRepoErr("stored role is invalid", err)
	}

	return user.ReconstructAccount(
		id, parsedEmail, hash, profile, parsedRole, active, settings,
		timePtr(lastLogin), pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

// ---- services ----

const serviceColumns = `id, business_id, name, description, duration, price::float8, category,
	is_active, created_at, updated_at`

type serviceRepo struct {
	db dbtx
}

func (r *serviceRepo) Create(ctx context.Context, svc *catalog.Service) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO services (id, business_id, name, description, duration, price, category,
			is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		svc.ID(), svc.BusinessID(), svc.Name(), svc.Description(), svc.Duration(), svc.Price(),
		svc.Category(), svc.IsActive(), pgconv.Timestamptz(svc.CreatedAt()), pgconv.Timestamptz(svc.UpdatedAt()),
	)
	if err != nil {
		return repoErr("failed to create service", err)
	}
	return nil
}

func (r *serviceRepo) Update(ctx context.Context, svc *catalog.Service) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE services SET
			name = $2, description = $3, duration = $4, price = $5, category = $6,
			is_active = $7, updated_at = $8
		WHERE id = $1`,
		svc.ID(), svc.Name(), svc.Description(), svc.Duration(), svc.Price(), svc.Category(),
		svc.IsActive(), pgconv.Timestamptz(svc.UpdatedAt()),
	)
	if err != nil {
		return repoErr("failed to update service", err)
	}
	return requireAffected(tag.RowsAffected(), "service not found")
}

func (r *serviceRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	row := r.db.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
	return scanService(row)
}

func (r *serviceRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*catalog.Service, error) {
	rows, err := r.db.Query(ctx, `SELECT `+serviceColumns+` FROM services WHERE business_id = $1`, businessID)
	if err != nil {
		return nil, repoErr("failed to list services", err)
	}
	defer rows.Close()

	var out []*catalog.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, repoErr("failed to list services", err)
	}
	catalog.SortByName(out)
	return out, nil
}

func scanService(row pgx.Row) (*catalog.Service, error) {
	var (
		id, businessID       uuid.UUID
		f                    catalog.Fields
		active               bool
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&id, &businessID, &f.Name, &f.Description, &f.Duration, &f.Price, &f.Category,
		&active, &createdAt, &updatedAt)
	if err != nil {
		return nil, repoErr("service not found", err)
	}
	return catalog.ReconstructService(id, businessID, f, active,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt)), nil
}

// ---- bookings ----

const bookingColumns = `id, business_id, service_id, service_name, client_name, client_email, client_phone,
	booking_date, start_time, duration, total_amount::float8, notes, status, payment_proof,
	payment_verified, reminder_sent, confirmation_sent, cancellation_reason, created_at, updated_at`

type bookingRepo struct {
	db dbtx
}

func (r *bookingRepo) Create(ctx context.Context, b *booking.Booking) error {
	s := b.Snapshot()
	date, err := pgconv.DateFromString(s.Date)
	if err != nil {
		return infra.WrapRepoErr("invalid booking date", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO bookings (`+bookingInsertColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		s.ID, s.BusinessID, s.ServiceID, s.ServiceName, s.ClientName, s.ClientEmail, s.ClientPhone,
		date, s.Time, s.Duration, s.TotalAmount, s.Notes, string(s.Status), pgconv.TextFromPtr(s.PaymentProof),
		s.PaymentVerified, s.ReminderSent, s.ConfirmationSent, pgconv.TextFromPtr(s.CancellationReason),
		pgconv.Timestamptz(s.CreatedAt), pgconv.Timestamptz(s.UpdatedAt),
	)
	if err != nil {
		return repoErr("failed to create booking", err)
	}
	return nil
}

const bookingInsertColumns = `id, business_id, service_id, service_name, client_name, client_email, client_phone,
	booking_date, start_time, duration, total_amount, notes, status, payment_proof,
	payment_verified, reminder_sent, confirmation_sent, cancellation_reason, created_at, updated_at`

func (r *bookingRepo) Update(ctx context.Context, b *booking.Booking) error {
	s := b.Snapshot()
	date, err := pgconv.DateFromString(s.Date)
	if err != nil {
		return infra.WrapRepoErr("invalid booking date", err)
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET
			booking_date = $2, start_time = $3, duration = $4, status = $5, payment_proof = $6,
			payment_verified = $7, reminder_sent = $8, confirmation_sent = $9,
			cancellation_reason = $10, notes = $11, updated_at = $12
		WHERE id = $1`,
		s.ID, date, s.Time, s.Duration, string(s.Status), pgconv.TextFromPtr(s.PaymentProof),
		s.PaymentVerified, s.ReminderSent, s.ConfirmationSent, pgconv.TextFromPtr(s.CancellationReason),
		s.Notes, pgconv.Timestamptz(s.UpdatedAt),
	)
	if err != nil {
		return repoErr("failed to update booking", err)
	}
	return requireAffected(tag.RowsAffected(), "booking not found")
}

func (r *bookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	return scanBooking(row)
}

func (r *bookingRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*booking.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE business_id = $1`, businessID)
}

func (r *bookingRepo) ListByBusinessAndDate(ctx context.Context, businessID uuid.UUID, date string) ([]*booking.Booking, error) {
	d, err := pgconv.DateFromString(date)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid booking date", err)
	}
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE business_id = $1 AND booking_date = $2`,
		businessID, d)
}

func (r *bookingRepo) ListAwaitingReminder(ctx context.Context, fromDate, toDate string) ([]*booking.Booking, error) {
	from, err := pgconv.DateFromString(fromDate)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reminder range", err)
	}
	to, err := pgconv.DateFromString(toDate)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reminder range", err)
	}
	return r.list(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE status = $1 AND NOT reminder_sent AND booking_date BETWEEN $2 AND $3`,
		string(booking.StatusConfirmed), from, to)
}

func (r *bookingRepo) list(ctx context.Context, query string, args ...any) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, repoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, repoErr("failed to list bookings", err)
	}
	booking.SortBySchedule(out)
	return out, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		s                    booking.Snapshot
		status               string
		date                 pgtype.Date
		proof, reason        pgtype.Text
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&s.ID, &s.BusinessID, &s.ServiceID, &s.ServiceName, &s.ClientName, &s.ClientEmail,
		&s.ClientPhone, &date, &s.Time, &s.Duration, &s.TotalAmount, &s.Notes, &status, &proof,
		&s.PaymentVerified, &s.ReminderSent, &s.ConfirmationSent, &reason, &createdAt, &updatedAt)
	if err != nil {
		return nil, repoErr("booking not found", err)
	}
	s.Date = pgconv.StringFromDate(date)
	s.Status = booking.Status(status)
	s.PaymentProof = pgconv.StringPtrFromPgtype(proof)
	s.CancellationReason = pgconv.StringPtrFromPgtype(reason)
	s.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	s.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return booking.ReconstructBooking(s), nil
}

// ---- notification jobs ----

const jobColumns = `id, business_id, topic, recipient, payload, status, attempts, run_at, last_error,
	created_at, updated_at`

type notificationRepo struct {
	db dbtx
}

func (r *notificationRepo) CreateJob(ctx context.Context, job *notification.Job) error {
	payload, err := json.Marshal(job.Payload())
	if err != nil {
		return infra.WrapRepoErr("failed to encode payload", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO notification_jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		job.ID(), job.BusinessID(), string(job.Topic()), job.Recipient(), payload, string(job.Status()),
		job.Attempts(), pgconv.Timestamptz(job.RunAt()), pgconv.TextFromPtr(job.LastError()),
		pgconv.Timestamptz(job.CreatedAt()), pgconv.Timestamptz(job.UpdatedAt()),
	)
	if err != nil {
		return repoErr("failed to create notification job", err)
	}
	return nil
}

func (r *notificationRepo) UpdateJob(ctx context.Context, job *notification.Job) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE notification_jobs SET
			status = $2, attempts = $3, run_at = $4, last_error = $5, updated_at = $6
		WHERE id = $1`,
		job.ID(), string(job.Status()), job.Attempts(), pgconv.Timestamptz(job.RunAt()),
		pgconv.TextFromPtr(job.LastError()), pgconv.Timestamptz(job.UpdatedAt()),
	)
	if err != nil {
		return repoErr("failed to update notification job", err)
	}
	return requireAffected(tag.RowsAffected(), "notification job not found")
}

// ClaimDue pushes run_at forward by the lease so a crashed dispatcher's jobs come back later.
// SKIP LOCKED keeps concurrent dispatchers off each other's rows.
func (r *notificationRepo) ClaimDue(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]*notification.Job, error) {
	rows, err := r.db.Query(ctx, `
		WITH due AS (
			SELECT id, run_at AS due_at FROM notification_jobs
			WHERE status = $3 AND run_at <= $1
			ORDER BY run_at, created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		), claimed AS (
			UPDATE notification_jobs SET run_at = $2
			WHERE id IN (SELECT id FROM due)
			RETURNING `+jobColumns+`
		)
		SELECT claimed.* FROM claimed JOIN due USING (id)
		ORDER BY due.due_at, claimed.created_at`,
		pgconv.Timestamptz(now), pgconv.Timestamptz(now.Add(lease)), string(notification.StatusPending), limit,
	)
	if err != nil {
		return nil, repoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var out []*notification.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	if err := rows.Err(); err != nil {
		return nil, repoErr("failed to claim notification jobs", err)
	}
	return out, nil
}

func scanJob(row pgx.Row) (*notification.Job, error) {
	var (
		id, businessID          uuid.UUID
		topic, recipient, state string
		rawPayload              []byte
		attempts                int
		runAt                   pgtype.Timestamptz
		lastError               pgtype.Text
		createdAt, updatedAt    pgtype.Timestamptz
	)
	err := row.Scan(&id, &businessID, &topic, &recipient, &rawPayload, &state, &attempts, &runAt,
		&lastError, &createdAt, &updatedAt)
	if err != nil {
		return nil, repoErr("notification job not found", err)
	}
	var payload notification.Payload
	if err := json.Unmarshal(rawPayload, &payload); err != nil {
		return nil, infra.WrapRepoErr("stored payload is invalid", err)
	}
	return notification.ReconstructJob(
		id, businessID, notification.Topic(topic), recipient, payload, notification.Status(state),
		attempts, pgconv.TimeFromPgtype(runAt), pgconv.StringPtrFromPgtype(lastError),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func timestamptzPtr(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgconv.Timestamptz(*t)
}

func timePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}
