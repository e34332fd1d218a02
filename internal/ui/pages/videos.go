// videos.go — каталог видео с фильтром по категории и детальная страница.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/eduplatform/frontend-module/internal/apiclient"
)

// Videos рендерит каталог опубликованных видео.
// selected != nil — выбран фильтр по категории.
func Videos(user *apiclient.User, videos []apiclient.VideoListItem, categories []apiclient.Category, selected *int) templ.Component {
	return layout("Видео", user, func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Каталог видео</h1>
<div class="card">
<form method="get" action="/videos">
<label for="category">Категория</label>
<select id="category" name="category" onchange="this.form.submit()">
<option value="">Все категории</option>
`); err != nil {
			return err
		}

		for _, cat := range categories {
			sel := ""
			if selected != nil && *selected == cat.ID {
				sel = ` selected`
			}
			if _, err := fmt.Fprintf(w, `<option value="%d"%s>%s (%d)</option>
`, cat.ID, sel, esc(cat.Name), cat.VideoCount); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `</select>
<noscript><button class="btn" type="submit">Показать</button></noscript>
</form>
</div>
`); err != nil {
			return err
		}

		if len(videos) == 0 {
			_, err := io.WriteString(w, `<div class="card"><p>Видео не найдены.</p></div>
`)
			return err
		}

		if _, err := io.WriteString(w, `<div class="card">
`); err != nil {
			return err
		}
		if err := videoGrid(w, videos); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div>\n")
		return err
	})
}

// VideoDetail рендерит страницу видео: встроенный плеер и связанные видео.
func VideoDetail(user *apiclient.User, detail *apiclient.VideoDetail) templ.Component {
	return layout(detail.Video.Title, user, func(ctx context.Context, w io.Writer) error {
		v := detail.Video

		if _, err := fmt.Fprintf(w, `<h1>%s</h1>
`, esc(v.Title)); err != nil {
			return err
		}

		if v.CategoryName != "" {
			if _, err := fmt.Fprintf(w, `<p class="muted">Категория: %s</p>
`, esc(v.CategoryName)); err != nil {
				return err
			}
		}

		if v.EmbedURL != "" {
			if _, err := fmt.Fprintf(w, `<div class="card">
<iframe width="100%%" height="480" src="%s" title="%s" frameborder="0" allowfullscreen></iframe>
</div>
`, esc(v.EmbedURL), esc(v.Title)); err != nil {
				return err
			}
		}

		if v.Description != "" {
			if _, err := fmt.Fprintf(w, `<div class="card"><p>%s</p></div>
`, esc(v.Description)); err != nil {
				return err
			}
		}

		if len(detail.RelatedVideos) > 0 {
			if _, err := io.WriteString(w, `<div class="card">
<h2>Похожие видео</h2>
`); err != nil {
				return err
			}
			if err := videoGrid(w, detail.RelatedVideos); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "</div>\n"); err != nil {
				return err
			}
		}

		return nil
	})
}
