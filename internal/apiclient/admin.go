// admin.go — операции admin API: статистика и CRUD пользователей,
// категорий и видео. Все endpoint'ы доступны только staff-пользователям;
// 403 от backend'а приходит вызывающему как ErrForbidden.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// AdminDashboard возвращает статистику платформы и недавнюю активность.
func (c *Client) AdminDashboard(ctx context.Context, ts TokenSource) (*AdminDashboard, error) {
	var out AdminDashboard
	if err := c.getJSON(ctx, ts, c.endpoints.AdminDashboard(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Пользователи ---

// AdminUsers возвращает список всех пользователей платформы.
func (c *Client) AdminUsers(ctx context.Context, ts TokenSource) ([]AdminUser, error) {
	var out struct {
		Users []AdminUser `json:"users"`
	}
	if err := c.getJSON(ctx, ts, c.endpoints.AdminUsers(), &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// AdminUser возвращает одного пользователя.
func (c *Client) AdminUser(ctx context.Context, ts TokenSource, id int) (*AdminUser, error) {
	var out struct {
		User AdminUser `json:"user"`
	}
	if err := c.getJSON(ctx, ts, c.endpoints.AdminUserDetail(id), &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// AdminCreateUser создаёт пользователя. Пароль в форме обязателен.
func (c *Client) AdminCreateUser(ctx context.Context, ts TokenSource, form UserForm) error {
	_, err := c.doJSON(ctx, ts, http.MethodPost, c.endpoints.AdminUsers(), form)
	return err
}

// AdminUpdateUser обновляет пользователя. Пустой пароль в форме означает
// «не менять» — ключ password при этом отсутствует в payload.
func (c *Client) AdminUpdateUser(ctx context.Context, ts TokenSource, id int, form UserForm) error {
	_, err := c.doJSON(ctx, ts, http.MethodPut, c.endpoints.AdminUserDetail(id), form)
	return err
}

// AdminDeleteUser удаляет пользователя.
// Backend отклоняет удаление собственного аккаунта (400 с сообщением).
func (c *Client) AdminDeleteUser(ctx context.Context, ts TokenSource, id int) error {
	_, err := c.doJSON(ctx, ts, http.MethodDelete, c.endpoints.AdminUserDetail(id), nil)
	return err
}

// AdminInvalidateUserSessions принудительно завершает все сессии пользователя
// и возвращает количество инвалидированных сессий.
func (c *Client) AdminInvalidateUserSessions(ctx context.Context, ts TokenSource, id int) (int, error) {
	body, err := c.doJSON(ctx, ts, http.MethodPost, c.endpoints.AdminUserInvalidateSessions(id), nil)
	if err != nil {
		return 0, err
	}

	var out struct {
		SessionsInvalidated int `json:"sessions_invalidated"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("декодирование ответа invalidate-sessions: %w", err)
	}
	return out.SessionsInvalidated, nil
}

// --- Категории ---

// AdminCategories возвращает все категории (включая пустые).
func (c *Client) AdminCategories(ctx context.Context, ts TokenSource) ([]Category, error) {
	var out struct {
		Categories []Category `json:"categories"`
	}
	if err := c.getJSON(ctx, ts, c.endpoints.AdminCategories(), &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// AdminCategory возвращает одну категорию.
func (c *Client) AdminCategory(ctx context.Context, ts TokenSource, id int) (*Category, error) {
	var out struct {
		Category Category `json:"category"`
	}
	if err := c.getJSON(ctx, ts, c.endpoints.AdminCategoryDetail(id), &out); err != nil {
		return nil, err
	}
	return &out.Category, nil
}

// AdminCreateCategory создаёт категорию.
func (c *Client) AdminCreateCategory(ctx context.Context, ts TokenSource, form CategoryForm) error {
	_, err := c.doJSON(ctx, ts, http.MethodPost, c.endpoints.AdminCategories(), form)
	return err
}

// AdminUpdateCategory обновляет категорию.
func (c *Client) AdminUpdateCategory(ctx context.Context, ts TokenSource, id int, form CategoryForm) error {
	_, err := c.doJSON(ctx, ts, http.MethodPut, c.endpoints.AdminCategoryDetail(id), form)
	return err
}

// AdminDeleteCategory удаляет категорию; её видео остаются без категории.
func (c *Client) AdminDeleteCategory(ctx context.Context, ts TokenSource, id int) error {
	_, err := c.doJSON(ctx, ts, http.MethodDelete, c.endpoints.AdminCategoryDetail(id), nil)
	return err
}

// --- Видео ---

// AdminVideos возвращает все видео, включая неопубликованные.
func (c *Client) AdminVideos(ctx context.Context, ts TokenSource) ([]Video, error) {
	var out struct {
		Videos []Video `json:"videos"`
	}
	if err := c.getJSON(ctx, ts, c.endpoints.AdminVideos(), &out); err != nil {
		return nil, err
	}
	return out.Videos, nil
}

// AdminVideo возвращает одно видео.
func (c *Client) AdminVideo(ctx context.Context, ts TokenSource, id int) (*Video, error) {
	var out struct {
		Video Video `json:"video"`
	}
	if err := c.getJSON(ctx, ts, c.endpoints.AdminVideoDetail(id), &out); err != nil {
		return nil, err
	}
	return &out.Video, nil
}

// AdminCreateVideo создаёт видео.
func (c *Client) AdminCreateVideo(ctx context.Context, ts TokenSource, form VideoForm) error {
	_, err := c.doJSON(ctx, ts, http.MethodPost, c.endpoints.AdminVideos(), form)
	return err
}

// AdminUpdateVideo обновляет видео.
func (c *Client) AdminUpdateVideo(ctx context.Context, ts TokenSource, id int, form VideoForm) error {
	_, err := c.doJSON(ctx, ts, http.MethodPut, c.endpoints.AdminVideoDetail(id), form)
	return err
}

// AdminDeleteVideo удаляет видео.
func (c *Client) AdminDeleteVideo(ctx context.Context, ts TokenSource, id int) error {
	_, err := c.doJSON(ctx, ts, http.MethodDelete, c.endpoints.AdminVideoDetail(id), nil)
	return err
}
