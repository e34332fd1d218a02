// profile.go — экран профиля: данные пользователя и активные сессии.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/eduplatform/frontend-module/internal/apiclient"
)

// Profile рендерит экран профиля текущего пользователя.
func Profile(user *apiclient.User, sessions []apiclient.Session) templ.Component {
	return layout("Профиль", user, func(ctx context.Context, w io.Writer) error {
		role := "Пользователь"
		if user.IsStaff {
			role = "Администратор"
		}

		if _, err := fmt.Fprintf(w, `<h1>Профиль</h1>
<div class="card">
<table>
<tr><th>Имя пользователя</th><td>%s</td></tr>
<tr><th>Email</th><td>%s</td></tr>
<tr><th>Имя</th><td>%s</td></tr>
<tr><th>Фамилия</th><td>%s</td></tr>
<tr><th>Роль</th><td>%s</td></tr>
<tr><th>Дата регистрации</th><td>%s</td></tr>
</table>
</div>
`,
			esc(user.Username),
			esc(user.Email),
			esc(user.FirstName),
			esc(user.LastName),
			role,
			esc(user.DateJoined),
		); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<div class="card">
<h2>Активные сессии</h2>
`); err != nil {
			return err
		}

		if len(sessions) == 0 {
			if _, err := io.WriteString(w, `<p class="muted">Нет данных об активных сессиях.</p>
`); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<table>
<tr><th>Начало</th><th>IP-адрес</th><th>Браузер</th></tr>
`); err != nil {
				return err
			}
			for _, s := range sessions {
				if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td></tr>
`, esc(s.CreatedAt), esc(s.IPAddress), esc(s.UserAgent)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</table>\n"); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</div>\n")
		return err
	})
}
