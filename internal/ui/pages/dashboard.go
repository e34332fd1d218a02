// dashboard.go — главный экран пользователя: категории с видео,
// видео без категории, приветственный баннер после входа.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/eduplatform/frontend-module/internal/apiclient"
)

// WelcomeBanner — одноразовый баннер после успешного входа.
type WelcomeBanner struct {
	// Message — приветственное сообщение backend'а.
	Message string
	// SessionsInvalidated — число завершённых прежних сессий.
	SessionsInvalidated int
}

// Dashboard рендерит главный экран пользователя.
// banner == nil — баннер не показывается (обычная навигация).
func Dashboard(user *apiclient.User, data *apiclient.DashboardData, banner *WelcomeBanner) templ.Component {
	return layout("Главная", user, func(ctx context.Context, w io.Writer) error {
		if banner != nil {
			msg := banner.Message
			if msg == "" {
				msg = "Добро пожаловать!"
			}
			if _, err := fmt.Fprintf(w, `<div class="banner">%s`, esc(msg)); err != nil {
				return err
			}
			if banner.SessionsInvalidated > 0 {
				if _, err := fmt.Fprintf(w, ` <span class="muted">Завершено прежних сессий: %d.</span>`, banner.SessionsInvalidated); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</div>\n"); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, `<h1>Здравствуйте, %s!</h1>
<p class="muted">Всего видео на платформе: %d</p>
`, esc(firstNonEmpty(data.User.FirstName, data.User.Username)), data.TotalVideos); err != nil {
			return err
		}

		for _, cat := range data.Categories {
			if _, err := fmt.Fprintf(w, `<div class="card">
<h2>%s</h2>
`, esc(cat.Name)); err != nil {
				return err
			}
			if cat.Description != "" {
				if _, err := fmt.Fprintf(w, `<p class="muted">%s</p>
`, esc(cat.Description)); err != nil {
					return err
				}
			}
			if err := videoGrid(w, cat.Videos); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "</div>\n"); err != nil {
				return err
			}
		}

		if len(data.UncategorizedVideos) > 0 {
			if _, err := io.WriteString(w, `<div class="card">
<h2>Без категории</h2>
`); err != nil {
				return err
			}
			if err := videoGrid(w, data.UncategorizedVideos); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "</div>\n"); err != nil {
				return err
			}
		}

		if len(data.Categories) == 0 && len(data.UncategorizedVideos) == 0 {
			if _, err := io.WriteString(w, `<div class="card"><p>Видео пока не добавлены.</p></div>
`); err != nil {
				return err
			}
		}

		return nil
	})
}

// videoGrid рендерит сетку карточек видео.
func videoGrid(w io.Writer, videos []apiclient.VideoListItem) error {
	if len(videos) == 0 {
		_, err := io.WriteString(w, `<p class="muted">В этой категории пока нет видео.</p>
`)
		return err
	}

	if _, err := io.WriteString(w, `<div class="grid">
`); err != nil {
		return err
	}
	for _, v := range videos {
		if _, err := fmt.Fprintf(w, `<div>
<a href="/videos/%d">`, v.ID); err != nil {
			return err
		}
		if v.ThumbnailURL != "" {
			if _, err := fmt.Fprintf(w, `<img class="thumb" src="%s" alt="%s"/>`, esc(v.ThumbnailURL), esc(v.Title)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<div>%s</div></a>
</div>
`, esc(v.Title)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</div>\n")
	return err
}

// firstNonEmpty возвращает первую непустую строку.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
