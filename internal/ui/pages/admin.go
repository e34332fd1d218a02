// admin.go — admin dashboard: статистика платформы и недавняя активность.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/eduplatform/frontend-module/internal/apiclient"
)

// AdminDashboard рендерит экран статистики для администратора.
func AdminDashboard(user *apiclient.User, data *apiclient.AdminDashboard) templ.Component {
	return layout("Администрирование", user, func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>Администрирование</h1>
<p>
<a class="btn" href="/admin/users">Пользователи</a>
<a class="btn" href="/admin/videos">Видео</a>
<a class="btn" href="/admin/categories">Категории</a>
</p>
<div class="card">
<h2>Статистика</h2>
<table>
<tr><th>Пользователей</th><td>%d</td></tr>
<tr><th>Видео</th><td>%d</td></tr>
<tr><th>Опубликовано видео</th><td>%d</td></tr>
<tr><th>Категорий</th><td>%d</td></tr>
<tr><th>Активных сессий</th><td>%d</td></tr>
</table>
</div>
`,
			data.Stats.TotalUsers,
			data.Stats.TotalVideos,
			data.Stats.PublishedVideos,
			data.Stats.TotalCategories,
			data.Stats.ActiveSessions,
		); err != nil {
			return err
		}

		if len(data.RecentUsers) > 0 {
			if _, err := io.WriteString(w, `<div class="card">
<h2>Новые пользователи</h2>
<table>
<tr><th>Имя пользователя</th><th>Email</th><th>Дата регистрации</th></tr>
`); err != nil {
				return err
			}
			for _, u := range data.RecentUsers {
				if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td></tr>
`, esc(u.Username), esc(u.Email), esc(u.DateJoined)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</table>\n</div>\n"); err != nil {
				return err
			}
		}

		if len(data.RecentVideos) > 0 {
			if _, err := io.WriteString(w, `<div class="card">
<h2>Новые видео</h2>
<table>
<tr><th>Название</th><th>Статус</th><th>Добавлено</th></tr>
`); err != nil {
				return err
			}
			for _, v := range data.RecentVideos {
				status := "Черновик"
				if v.IsPublished {
					status = "Опубликовано"
				}
				if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td></tr>
`, esc(v.Title), status, esc(v.CreatedAt)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</table>\n</div>\n"); err != nil {
				return err
			}
		}

		return nil
	})
}
