// errors.go — экраны ошибок: не найдено, доступ запрещён, сбой сервера.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/eduplatform/frontend-module/internal/apiclient"
)

// NotFound рендерит экран «страница не найдена» с путём назад.
func NotFound(user *apiclient.User) templ.Component {
	return layout("Страница не найдена", user, func(ctx context.Context, w io.Writer) error {
		back := "/login"
		if user != nil {
			back = "/dashboard"
		}
		_, err := fmt.Fprintf(w, `<div class="card" style="text-align:center">
<h1>404</h1>
<p>Страница не найдена или была удалена.</p>
<p><a class="btn" href="%s">Вернуться</a></p>
</div>
`, back)
		return err
	})
}

// AccessDenied рендерит экран «доступ запрещён» (403).
func AccessDenied(user *apiclient.User) templ.Component {
	return layout("Доступ запрещён", user, func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="card" style="text-align:center">
<h1>Доступ запрещён</h1>
<p>Этот раздел доступен только администраторам.</p>
<p><a class="btn" href="/dashboard">На главную</a></p>
</div>
`)
		return err
	})
}

// ServerError рендерит экран сбоя с сообщением для пользователя.
func ServerError(user *apiclient.User, message string) templ.Component {
	return layout("Ошибка", user, func(ctx context.Context, w io.Writer) error {
		if message == "" {
			message = "Произошла ошибка. Попробуйте позже."
		}
		_, err := fmt.Fprintf(w, `<div class="card" style="text-align:center">
<h1>Ошибка</h1>
<p>%s</p>
<p><a class="btn" href="/dashboard">На главную</a></p>
</div>
`, esc(message))
		return err
	})
}
