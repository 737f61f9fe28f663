package database

// Date layouts of the text date columns.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// NotificationState is whether a user receives broadcasts.
type NotificationState string

const (
	NotificationsActive NotificationState = "active"
	NotificationsMuted  NotificationState = "muted"
)

// User is a person who has interacted with the bot.
type User struct {
	UserID        int64             `db:"user_id"`
	FirstName     string            `db:"first_name"`
	Username      string            `db:"username"` // "@handle" or NoUsername
	ChatID        int64             `db:"chat_id"`
	Submissions   int               `db:"submissions"`
	Notifications NotificationState `db:"notifications"`
	RegisteredAt  string            `db:"registered_at"`
}

// NoUsername is stored for users without a Telegram handle.
const NoUsername = "Sin username"

// JobOffer is a published job offer.
type JobOffer struct {
	ID          int64  `db:"id"`
	Seq         int64  `db:"seq"`
	Title       string `db:"title"`
	Company     string `db:"company"`
	Salary      string `db:"salary"`
	Description string `db:"description"`
	Contact     string `db:"contact"`
	Date        string `db:"date"` // DateLayout; kept as text so unparseable values survive
	OwnerID     int64  `db:"owner_id"`
}

// Candidate is a registered job seeker.
type Candidate struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	JobType   string `db:"job_type"`
	Education string `db:"education"`
	Contact   string `db:"contact"`
	CreatedAt string `db:"created_at"` // TimestampLayout
	OwnerID   int64  `db:"owner_id"`
}

// Stats are table sizes reported by the health endpoint.
type Stats struct {
	Users      int `db:"users"      json:"users"`
	Offers     int `db:"offers"     json:"offers"`
	Candidates int `db:"candidates" json:"candidates"`
}
