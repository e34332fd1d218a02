// login.go — экран входа.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Login рендерит форму входа.
// errorMsg — сообщение об ошибке предыдущей попытки ("" — нет ошибки).
func Login(errorMsg string) templ.Component {
	return layout("Вход", nil, func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="card" style="max-width:24rem;margin:4rem auto">
<h1>Вход в EduPlatform</h1>
`); err != nil {
			return err
		}

		if errorMsg != "" {
			if _, err := fmt.Fprintf(w, `<div class="error">%s</div>
`, esc(errorMsg)); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `<form method="post" action="/login">
<label for="username">Имя пользователя</label>
<input type="text" id="username" name="username" required autofocus/>
<label for="password">Пароль</label>
<input type="password" id="password" name="password" required/>
<p><button class="btn" type="submit">Войти</button></p>
</form>
</div>
`)
		return err
	})
}
