// endpoints.go — реестр endpoint'ов REST API платформы.
// Чистое отображение логической операции в URL; никакой логики запросов.
package apiclient

import (
	"fmt"
	"strings"
)

// Endpoints — реестр URL API платформы, построенный от базового URL.
type Endpoints struct {
	base string
}

// NewEndpoints создаёт реестр endpoint'ов. Trailing slash базового URL убирается.
func NewEndpoints(baseURL string) *Endpoints {
	return &Endpoints{base: strings.TrimRight(baseURL, "/")}
}

// --- Аутентификация ---

// Login — POST, вход по логину/паролю.
func (e *Endpoints) Login() string { return e.base + "/api/auth/login/" }

// Logout — POST, выход (инвалидация refresh token на сервере).
func (e *Endpoints) Logout() string { return e.base + "/api/auth/logout/" }

// Refresh — POST, обновление access token по refresh token.
func (e *Endpoints) Refresh() string { return e.base + "/api/auth/refresh/" }

// Me — GET, данные текущего пользователя.
func (e *Endpoints) Me() string { return e.base + "/api/auth/me/" }

// Sessions — GET, активные сессии текущего пользователя.
func (e *Endpoints) Sessions() string { return e.base + "/api/auth/sessions/" }

// --- Пользовательские экраны ---

// Dashboard — GET, данные пользовательского dashboard.
func (e *Endpoints) Dashboard() string { return e.base + "/api/dashboard/" }

// Videos — GET, список опубликованных видео.
func (e *Endpoints) Videos() string { return e.base + "/api/videos/" }

// VideoDetail — GET, детальная информация о видео.
func (e *Endpoints) VideoDetail(id int) string {
	return fmt.Sprintf("%s/api/videos/%d/", e.base, id)
}

// Categories — GET, список категорий.
func (e *Endpoints) Categories() string { return e.base + "/api/categories/" }

// CategoryDetail — GET, категория с её видео.
func (e *Endpoints) CategoryDetail(id int) string {
	return fmt.Sprintf("%s/api/categories/%d/", e.base, id)
}

// --- Admin API ---

// AdminDashboard — GET, статистика для admin dashboard.
func (e *Endpoints) AdminDashboard() string { return e.base + "/api/admin/dashboard/" }

// AdminUsers — GET/POST, коллекция пользователей.
func (e *Endpoints) AdminUsers() string { return e.base + "/api/admin/users/" }

// AdminUserDetail — GET/PUT/DELETE, один пользователь.
func (e *Endpoints) AdminUserDetail(id int) string {
	return fmt.Sprintf("%s/api/admin/users/%d/", e.base, id)
}

// AdminUserInvalidateSessions — POST, принудительная инвалидация сессий пользователя.
func (e *Endpoints) AdminUserInvalidateSessions(id int) string {
	return fmt.Sprintf("%s/api/admin/users/%d/invalidate-sessions/", e.base, id)
}

// AdminCategories — GET/POST, коллекция категорий.
func (e *Endpoints) AdminCategories() string { return e.base + "/api/admin/categories/" }

// AdminCategoryDetail — GET/PUT/DELETE, одна категория.
func (e *Endpoints) AdminCategoryDetail(id int) string {
	return fmt.Sprintf("%s/api/admin/categories/%d/", e.base, id)
}

// AdminVideos — GET/POST, коллекция видео.
func (e *Endpoints) AdminVideos() string { return e.base + "/api/admin/videos/" }

// AdminVideoDetail — GET/PUT/DELETE, одно видео.
func (e *Endpoints) AdminVideoDetail(id int) string {
	return fmt.Sprintf("%s/api/admin/videos/%d/", e.base, id)
}
