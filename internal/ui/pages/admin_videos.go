// admin_videos.go — управление видео: список, формы, удаление.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/eduplatform/frontend-module/internal/apiclient"
)

// AdminVideosView — данные экрана списка видео.
type AdminVideosView struct {
	Videos []apiclient.Video
	// Categories — для выбора категории в форме.
	Categories     []apiclient.Category
	ShowCreateForm bool
	// EditVideo — видео в форме редактирования (nil — форма скрыта).
	EditVideo    *apiclient.Video
	ErrorMessage string
}

// AdminVideos рендерит экран управления видео.
func AdminVideos(current *apiclient.User, view *AdminVideosView) templ.Component {
	return layout("Управление видео", current, func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Управление видео</h1>
<p><a class="btn" href="/admin/videos?new=1">Добавить видео</a></p>
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
			if err := videoForm(w, nil, view.Categories); err != nil {
				return err
			}
		}
		if view.EditVideo != nil {
			if err := videoForm(w, view.EditVideo, view.Categories); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<div class="card">
<table>
<tr><th>Название</th><th>Категория</th><th>Порядок</th><th>Статус</th><th></th></tr>
`); err != nil {
			return err
		}

		for _, v := range view.Videos {
			category := v.CategoryName
			if category == "" {
				category = "—"
			}
			status := "Черновик"
			if v.IsPublished {
				status = "Опубликовано"
			}

			if _, err := fmt.Fprintf(w, `<tr>
<td>%s</td><td>%s</td><td>%d</td><td>%s</td>
<td>
<a class="btn secondary" href="/admin/videos?edit=%d">Изменить</a>
<a class="btn danger" href="/admin/videos/%d/delete">Удалить</a>
</td>
</tr>
`, esc(v.Title), esc(category), v.Order, status, v.ID, v.ID); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</table>\n</div>\n")
		return err
	})
}

// videoForm рендерит форму создания (edit == nil) или редактирования видео.
func videoForm(w io.Writer, edit *apiclient.Video, categories []apiclient.Category) error {
	title := "Новое видео"
	action := "/admin/videos"
	var v apiclient.Video
	if edit != nil {
		v = *edit
		title = "Редактирование: " + v.Title
		action = fmt.Sprintf("/admin/videos/%d", v.ID)
	}

	if _, err := fmt.Fprintf(w, `<div class="card">
<h2>%s</h2>
<form method="post" action="%s">
<label for="title">Название</label>
<input type="text" id="title" name="title" value="%s" required/>
<label for="youtube_url">Ссылка на YouTube</label>
<input type="url" id="youtube_url" name="youtube_url" value="%s" required/>
<label for="description">Описание</label>
<textarea id="description" name="description" rows="3">%s</textarea>
<label for="category">Категория</label>
<select id="category" name="category">
<option value="">Без категории</option>
`, esc(title), action, esc(v.Title), esc(v.YoutubeURL), esc(v.Description)); err != nil {
		return err
	}

	for _, c := range categories {
		sel := ""
		if v.Category != nil && *v.Category == c.ID {
			sel = " selected"
		}
		if _, err := fmt.Fprintf(w, `<option value="%d"%s>%s</option>
`, c.ID, sel, esc(c.Name)); err != nil {
			return err
		}
	}

	published := ""
	if v.IsPublished {
		published = " checked"
	}

	_, err := fmt.Fprintf(w, `</select>
<label for="order">Порядок</label>
<input type="number" id="order" name="order" value="%d"/>
<label><input type="checkbox" name="is_published" value="1"%s/> Опубликовано</label>
<p>
<button class="btn" type="submit">Сохранить</button>
<a class="btn secondary" href="/admin/videos">Отмена</a>
</p>
</form>
</div>
`, v.Order, published)
	return err
}

// AdminVideoDelete рендерит страницу подтверждения удаления видео.
func AdminVideoDelete(current *apiclient.User, target *apiclient.Video) templ.Component {
	return layout("Удаление видео", current, func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="card" style="max-width:28rem;margin:3rem auto;text-align:center">
<h1>Удалить видео?</h1>
<p>Видео <strong>%s</strong> будет удалено без возможности восстановления.</p>
<form method="post" action="/admin/videos/%d/delete">
<button class="btn danger" type="submit">Удалить</button>
<a class="btn secondary" href="/admin/videos">Отмена</a>
</form>
</div>
`, esc(target.Title), target.ID)
		return err
	})
}
