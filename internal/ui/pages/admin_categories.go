// admin_categories.go — управление категориями: список, формы, удаление.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/eduplatform/frontend-module/internal/apiclient"
)

// AdminCategoriesView — данные экрана списка категорий.
type AdminCategoriesView struct {
	Categories     []apiclient.Category
	ShowCreateForm bool
	// EditCategory — категория в форме редактирования (nil — форма скрыта).
	EditCategory *apiclient.Category
	ErrorMessage string
}

// AdminCategories рендерит экран управления категориями.
func AdminCategories(current *apiclient.User, view *AdminCategoriesView) templ.Component {
	return layout("Категории", current, func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Категории</h1>
<p><a class="btn" href="/admin/categories?new=1">Создать категорию</a></p>
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
			if err := categoryForm(w, nil); err != nil {
				return err
			}
		}
		if view.EditCategory != nil {
			if err := categoryForm(w, view.EditCategory); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<div class="card">
<table>
<tr><th>Название</th><th>Описание</th><th>Порядок</th><th>Видео</th><th></th></tr>
`); err != nil {
			return err
		}

		for _, c := range view.Categories {
			if _, err := fmt.Fprintf(w, `<tr>
<td>%s</td><td>%s</td><td>%d</td><td>%d</td>
<td>
<a class="btn secondary" href="/admin/categories?edit=%d">Изменить</a>
<a class="btn danger" href="/admin/categories/%d/delete">Удалить</a>
</td>
</tr>
`, esc(c.Name), esc(c.Description), c.Order, c.VideoCount, c.ID, c.ID); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</table>\n</div>\n")
		return err
	})
}

// categoryForm рендерит форму создания (edit == nil) или редактирования категории.
func categoryForm(w io.Writer, edit *apiclient.Category) error {
	title := "Новая категория"
	action := "/admin/categories"
	var c apiclient.Category
	if edit != nil {
		c = *edit
		title = "Редактирование: " + c.Name
		action = fmt.Sprintf("/admin/categories/%d", c.ID)
	}

	_, err := fmt.Fprintf(w, `<div class="card">
<h2>%s</h2>
<form method="post" action="%s">
<label for="name">Название</label>
<input type="text" id="name" name="name" value="%s" required/>
<label for="description">Описание</label>
<textarea id="description" name="description" rows="3">%s</textarea>
<label for="order">Порядок</label>
<input type="number" id="order" name="order" value="%d"/>
<p>
<button class="btn" type="submit">Сохранить</button>
<a class="btn secondary" href="/admin/categories">Отмена</a>
</p>
</form>
</div>
`, esc(title), action, esc(c.Name), esc(c.Description), c.Order)
	return err
}

// AdminCategoryDelete рендерит страницу подтверждения удаления категории.
func AdminCategoryDelete(current *apiclient.User, target *apiclient.Category) templ.Component {
	return layout("Удаление категории", current, func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="card" style="max-width:28rem;margin:3rem auto;text-align:center">
<h1>Удалить категорию?</h1>
<p>Категория <strong>%s</strong> будет удалена; её видео останутся без категории.</p>
<form method="post" action="/admin/categories/%d/delete">
<button class="btn danger" type="submit">Удалить</button>
<a class="btn secondary" href="/admin/categories">Отмена</a>
</form>
</div>
`, esc(target.Name), target.ID)
		return err
	})
}
