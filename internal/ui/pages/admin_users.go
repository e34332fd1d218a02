// admin_users.go — управление пользователями: список, формы создания
// и редактирования, подтверждение удаления.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/eduplatform/frontend-module/internal/apiclient"
)

// AdminUsersView — данные экрана списка пользователей.
type AdminUsersView struct {
	// Users — все пользователи платформы.
	Users []apiclient.AdminUser
	// ShowCreateForm — рендерить форму создания.
	ShowCreateForm bool
	// EditUser — пользователь в форме редактирования (nil — форма скрыта).
	EditUser *apiclient.AdminUser
	// ErrorMessage — сообщение об ошибке предыдущей операции.
	ErrorMessage string
}

// AdminUsers рендерит экран управления пользователями.
// current — вошедший администратор: для его строки не рендерится удаление,
// а staff-статус в форме редактирования заблокирован.
func AdminUsers(current *apiclient.User, view *AdminUsersView) templ.Component {
	return layout("Пользователи", current, func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Пользователи</h1>
<p><a class="btn" href="/admin/users?new=1">Создать пользователя</a></p>
`); err != nil {
			return err
		}

		if view.ErrorMessage != "" {
			if _, err := fmt.Fprintf(w, `<div class="error">%s</div>
`, esc(view.ErrorMessage)); err != nil {
				return err
			}
		}

		if view.ShowCreateForm {
			if err := userForm(w, nil, current); err != nil {
				return err
			}
		}
		if view.EditUser != nil {
			if err := userForm(w, view.EditUser, current); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<div class="card">
<table>
<tr><th>Имя пользователя</th><th>Email</th><th>Роль</th><th>Статус</th><th>Сессии</th><th></th></tr>
`); err != nil {
			return err
		}

		for _, u := range view.Users {
			role := "Пользователь"
			if u.IsStaff {
				role = "Администратор"
			}
			status := "Заблокирован"
			if u.IsActive {
				status = "Активен"
			}

			if _, err := fmt.Fprintf(w, `<tr>
<td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td>
<td>
<a class="btn secondary" href="/admin/users?edit=%d">Изменить</a>
<form method="post" action="/admin/users/%d/invalidate-sessions" style="display:inline">
<button class="btn secondary" type="submit">Завершить сессии</button>
</form>
`, esc(u.Username), esc(u.Email), role, status, u.ActiveSessions, u.ID, u.ID); err != nil {
				return err
			}

			// Удаление собственного аккаунта не предлагается
			if current == nil || u.ID != current.ID {
				if _, err := fmt.Fprintf(w, `<a class="btn danger" href="/admin/users/%d/delete">Удалить</a>
`, u.ID); err != nil {
					return err
				}
			}

			if _, err := io.WriteString(w, "</td>\n</tr>\n"); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</table>\n</div>\n")
		return err
	})
}

// userForm рендерит форму создания (edit == nil) или редактирования пользователя.
func userForm(w io.Writer, edit *apiclient.AdminUser, current *apiclient.User) error {
	title := "Новый пользователь"
	action := "/admin/users"
	passwordHint := "Пароль"
	var u apiclient.AdminUser
	if edit != nil {
		u = *edit
		title = "Редактирование: " + u.Username
		action = fmt.Sprintf("/admin/users/%d", u.ID)
		passwordHint = "Новый пароль (пусто — не менять)"
	}

	checked := func(b bool) string {
		if b {
			return " checked"
		}
		return ""
	}

	if _, err := fmt.Fprintf(w, `<div class="card">
<h2>%s</h2>
<form method="post" action="%s">
<label for="username">Имя пользователя</label>
<input type="text" id="username" name="username" value="%s" required/>
<label for="email">Email</label>
<input type="email" id="email" name="email" value="%s"/>
<label for="first_name">Имя</label>
<input type="text" id="first_name" name="first_name" value="%s"/>
<label for="last_name">Фамилия</label>
<input type="text" id="last_name" name="last_name" value="%s"/>
<label for="password">%s</label>
<input type="password" id="password" name="password"%s/>
`,
		esc(title), action,
		esc(u.Username), esc(u.Email), esc(u.FirstName), esc(u.LastName),
		passwordHint, requiredIfCreate(edit),
	); err != nil {
		return err
	}

	// Собственный staff-статус менять нельзя — backend отклонит запрос
	staffDisabled := ""
	if edit != nil && current != nil && edit.ID == current.ID {
		staffDisabled = " disabled"
	}

	_, err := fmt.Fprintf(w, `<label><input type="checkbox" name="is_staff" value="1"%s%s/> Администратор</label>
<label><input type="checkbox" name="is_active" value="1"%s/> Активен</label>
<p>
<button class="btn" type="submit">Сохранить</button>
<a class="btn secondary" href="/admin/users">Отмена</a>
</p>
</form>
</div>
`, checked(u.IsStaff), staffDisabled, checked(edit == nil || u.IsActive))
	return err
}

// requiredIfCreate — атрибут required для пароля при создании.
func requiredIfCreate(edit *apiclient.AdminUser) string {
	if edit == nil {
		return " required"
	}
	return ""
}

// AdminUserDelete рендерит страницу подтверждения удаления пользователя.
func AdminUserDelete(current *apiclient.User, target *apiclient.AdminUser) templ.Component {
	return layout("Удаление пользователя", current, func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="card" style="max-width:28rem;margin:3rem auto;text-align:center">
<h1>Удалить пользователя?</h1>
<p>Пользователь <strong>%s</strong> будет удалён без возможности восстановления.</p>
<form method="post" action="/admin/users/%d/delete">
<button class="btn danger" type="submit">Удалить</button>
<a class="btn secondary" href="/admin/users">Отмена</a>
</form>
</div>
`, esc(target.Username), target.ID)
		return err
	})
}
