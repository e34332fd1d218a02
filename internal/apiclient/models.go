// models.go — модели данных REST API платформы.
// Клиент хранит только эфемерные копии: владелец всех сущностей — backend.
package apiclient

// User — снимок данных пользователя (ответ /api/auth/me/, поле user).
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsActive    bool   `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser,omitempty"`
	DateJoined  string `json:"date_joined"`
}

// AdminUser — пользователь в admin-списке (с количеством активных сессий).
type AdminUser struct {
	User
	ActiveSessions int `json:"active_sessions"`
}

// Video — полные данные видео (admin CRUD и детальная страница).
type Video struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	YoutubeURL   string `json:"youtube_url"`
	Category     *int   `json:"category"`
	CategoryName string `json:"category_name"`
	Order        int    `json:"order"`
	IsPublished  bool   `json:"is_published"`
	EmbedURL     string `json:"embed_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// VideoListItem — сокращённое представление видео для списков.
type VideoListItem struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     *int   `json:"category"`
	CategoryName string `json:"category_name"`
	ThumbnailURL string `json:"thumbnail_url"`
	CreatedAt    string `json:"created_at"`
}

// Category — категория видео.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	VideoCount  int    `json:"video_count"`
	CreatedAt   string `json:"created_at"`
}

// CategoryWithVideos — категория вместе с её опубликованными видео (dashboard).
type CategoryWithVideos struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Order       int             `json:"order"`
	Videos      []VideoListItem `json:"videos"`
}

// DashboardData — ответ GET /api/dashboard/.
type DashboardData struct {
	Categories          []CategoryWithVideos `json:"categories"`
	UncategorizedVideos []VideoListItem      `json:"uncategorized_videos"`
	TotalVideos         int                  `json:"total_videos"`
	User                DashboardUser        `json:"user"`
}

// DashboardUser — краткие данные пользователя в ответе dashboard.
type DashboardUser struct {
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// Session — активная сессия пользователя (GET /api/auth/sessions/).
type Session struct {
	ID        int    `json:"id"`
	CreatedAt string `json:"created_at"`
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
}

// AdminStats — блок stats в ответе GET /api/admin/dashboard/.
type AdminStats struct {
	TotalUsers      int `json:"total_users"`
	TotalVideos     int `json:"total_videos"`
	PublishedVideos int `json:"published_videos"`
	TotalCategories int `json:"total_categories"`
	ActiveSessions  int `json:"active_sessions"`
}

// RecentUser — недавно зарегистрированный пользователь (admin dashboard).
type RecentUser struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	DateJoined string `json:"date_joined"`
}

// RecentVideo — недавно добавленное видео (admin dashboard).
type RecentVideo struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	IsPublished bool   `json:"is_published"`
	CreatedAt   string `json:"created_at"`
}

// AdminDashboard — ответ GET /api/admin/dashboard/.
type AdminDashboard struct {
	Stats        AdminStats    `json:"stats"`
	RecentUsers  []RecentUser  `json:"recent_users"`
	RecentVideos []RecentVideo `json:"recent_videos"`
}

// LoginResponse — ответ POST /api/auth/login/ при успехе.
type LoginResponse struct {
	Access              string `json:"access"`
	Refresh             string `json:"refresh"`
	User                User   `json:"user"`
	Message             string `json:"message"`
	SessionsInvalidated int    `json:"sessions_invalidated"`
}

// --- Формы записи ---
// Формы отправляются целиком (без диффа), как заполнил их пользователь.

// UserForm — payload создания/редактирования пользователя.
// Пустой пароль при редактировании обязан отсутствовать в JSON целиком:
// backend трактует отсутствие ключа как «пароль не менять», тогда как
// пустая строка могла бы быть воспринята как его сброс.
// IsStaff == nil — ключ is_staff отсутствует в JSON: backend отклоняет
// попытку сменить собственный staff-статус, поэтому при редактировании
// своего аккаунта ключ не отправляется вовсе.
type UserForm struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password,omitempty"`
	IsStaff   *bool  `json:"is_staff,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// CategoryForm — payload создания/редактирования категории.
type CategoryForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// VideoForm — payload создания/редактирования видео.
// Category == nil означает «без категории» (null в JSON).
type VideoForm struct {
	Title       string `json:"title"`
	YoutubeURL  string `json:"youtube_url"`
	Description string `json:"description"`
	Category    *int   `json:"category"`
	Order       int    `json:"order"`
	IsPublished bool   `json:"is_published"`
}
