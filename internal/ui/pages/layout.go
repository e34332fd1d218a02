// Пакет pages — серверный рендеринг экранов frontend-module.
// Компоненты реализуют templ.Component; общий каркас страницы — layout.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/eduplatform/frontend-module/internal/apiclient"
)

// esc экранирует строку для вставки в HTML.
func esc(s string) string {
	return templ.EscapeString(s)
}

// displayName — имя пользователя для приветствия: first_name или username.
func displayName(user *apiclient.User) string {
	if user == nil {
		return ""
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	return user.Username
}

// layout оборачивает содержимое экрана в общий каркас страницы:
// head, навигация, footer. user == nil — навигация не рендерится (экран входа).
func layout(title string, user *apiclient.User, body func(ctx context.Context, w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>%s — EduPlatform</title>
<style>
body{font-family:system-ui,sans-serif;margin:0;background:#f5f6fa;color:#1f2430}
nav{background:#1f2a44;color:#fff;display:flex;align-items:center;gap:1.5rem;padding:.75rem 1.5rem}
nav a{color:#cfd8ea;text-decoration:none}
nav a:hover{color:#fff}
nav .brand{font-weight:700;color:#fff;font-size:1.1rem}
nav form{margin-left:auto}
main{max-width:960px;margin:1.5rem auto;padding:0 1rem}
.card{background:#fff;border-radius:8px;padding:1.25rem;margin-bottom:1rem;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.banner{background:#e6f4ea;border:1px solid #b5dcc0;border-radius:8px;padding:.75rem 1rem;margin-bottom:1rem}
.error{background:#fdecea;border:1px solid #f5c6c3;border-radius:8px;padding:.75rem 1rem;margin-bottom:1rem;color:#8a1f17}
table{width:100%%;border-collapse:collapse}
th,td{text-align:left;padding:.5rem .6rem;border-bottom:1px solid #e3e6ee}
.btn{display:inline-block;background:#2454b5;color:#fff;border:0;border-radius:6px;padding:.45rem .9rem;text-decoration:none;cursor:pointer;font-size:.9rem}
.btn.danger{background:#b52424}
.btn.secondary{background:#5a627a}
label{display:block;margin:.6rem 0 .2rem;font-size:.9rem}
input[type=text],input[type=password],input[type=email],input[type=url],input[type=number],textarea,select{width:100%%;max-width:28rem;padding:.45rem;border:1px solid #c7cdda;border-radius:6px}
.muted{color:#69708a;font-size:.85rem}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(240px,1fr));gap:1rem}
.thumb{width:100%%;border-radius:6px;display:block}
</style>
</head>
<body>
`, esc(title)); err != nil {
			return err
		}

		if user != nil {
			if err := navbar(ctx, w, user); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, "<main>\n"); err != nil {
			return err
		}
		if err := body(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

// navbar рендерит навигацию; admin-ссылка видна только staff-пользователям.
func navbar(_ context.Context, w io.Writer, user *apiclient.User) error {
	if _, err := io.WriteString(w, `<nav>
<span class="brand">EduPlatform</span>
<a href="/dashboard">Главная</a>
<a href="/videos">Видео</a>
<a href="/profile">Профиль</a>
`); err != nil {
		return err
	}

	if user.IsStaff {
		if _, err := io.WriteString(w, `<a href="/admin">Администрирование</a>
`); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, `<form method="post" action="/logout">
<span class="muted">%s</span>
<button class="btn secondary" type="submit">Выйти</button>
</form>
</nav>
`, esc(displayName(user)))
	return err
}
