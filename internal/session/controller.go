// controller.go — контроллер сессии: вход, выход, разрешение статуса
// сессии для запроса и обновление access token через refresh token.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/eduplatform/frontend-module/internal/apiclient"
)

// Status — статус сессии в жизненном цикле запроса.
type Status string

const (
	// StatusUnresolved — статус ещё не определялся.
	StatusUnresolved Status = "unresolved"
	// StatusChecking — идёт проверка сессии через backend.
	StatusChecking Status = "checking"
	// StatusAuthenticated — сессия подтверждена backend'ом.
	StatusAuthenticated Status = "authenticated"
	// StatusAnonymous — сессии нет или она не подтвердилась.
	StatusAnonymous Status = "anonymous"
)

// State — разрешённое состояние сессии запроса.
type State struct {
	// Status — итоговый статус сессии.
	Status Status
	// User — снимок пользователя (nil для анонимного состояния).
	User *apiclient.User
	// Data — данные сессии (nil для анонимного состояния).
	Data *Data
}

// Authenticated сообщает, подтверждена ли сессия.
func (s *State) Authenticated() bool {
	return s != nil && s.Status == StatusAuthenticated
}

// LoginOutcome — исход попытки входа на уровне контроллера.
type LoginOutcome struct {
	// OK — вход успешен, сессия записана.
	OK bool
	// ErrorMessage — сообщение для формы входа при отказе.
	ErrorMessage string
	// Message — приветственное сообщение backend'а.
	Message string
	// SessionsInvalidated — число завершённых прежних сессий
	// (политика единственной активной сессии).
	SessionsInvalidated int
	// User — вошедший пользователь.
	User *apiclient.User
}

// Controller — контроллер сессий: связывает менеджер cookie и клиент API.
type Controller struct {
	manager *Manager
	api     *apiclient.Client
	logger  *slog.Logger
	// refreshGroup коалесцирует конкурентные refresh одного refresh token:
	// backend получает один запрос, все ожидающие — его результат.
	refreshGroup singleflight.Group
}

// NewController создаёт контроллер сессий.
func NewController(manager *Manager, api *apiclient.Client, logger *slog.Logger) *Controller {
	return &Controller{
		manager: manager,
		api:     api,
		logger:  logger.With(slog.String("component", "session_controller")),
	}
}

// Manager возвращает менеджер cookie контроллера.
func (c *Controller) Manager() *Manager {
	return c.manager
}

// Login выполняет вход и при успехе записывает сессию в cookie ответа.
// Ошибка возвращается только при сбое транспорта; отказ backend'а
// приходит как LoginOutcome с ErrorMessage.
func (c *Controller) Login(ctx context.Context, w http.ResponseWriter, username, password string) (*LoginOutcome, error) {
	result, err := c.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	if !result.OK {
		return &LoginOutcome{ErrorMessage: result.ErrorMessage}, nil
	}

	lr := result.Response
	data := &Data{
		AccessToken:  lr.Access,
		RefreshToken: lr.Refresh,
		User:         &lr.User,
	}
	if err := c.manager.Set(w, data); err != nil {
		return nil, fmt.Errorf("запись сессии: %w", err)
	}

	c.logger.Info("Пользователь вошёл",
		slog.String("username", lr.User.Username),
		slog.Int("sessions_invalidated", lr.SessionsInvalidated),
	)

	return &LoginOutcome{
		OK:                  true,
		Message:             lr.Message,
		SessionsInvalidated: lr.SessionsInvalidated,
		User:                &lr.User,
	}, nil
}

// Logout завершает сессию: best-effort инвалидация refresh token на
// сервере и безусловная очистка cookie. Сбой backend'а не мешает выходу.
func (c *Controller) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	data, err := c.manager.FromRequest(r)
	if err == nil && data != nil {
		if err := c.api.Logout(ctx, data.AccessToken, data.RefreshToken); err != nil {
			c.logger.Warn("Инвалидация refresh token при выходе не удалась",
				slog.String("error", err.Error()),
			)
		}
	}

	c.manager.Clear(w)
}

// Resolve определяет статус сессии запроса.
//
// Отсутствие cookie — анонимный статус. При наличии cookie сессия
// подтверждается запросом /me; истёкший access token прозрачно
// обновляется (однократно), неудачный refresh очищает cookie.
// Любой недоказанный исход — анонимный статус (fail-closed).
func (c *Controller) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) *State {
	state := &State{Status: StatusUnresolved}

	data, err := c.manager.FromRequest(r)
	if err != nil {
		c.logger.Warn("Повреждённый session cookie", slog.String("error", err.Error()))
		c.manager.Clear(w)
		state.Status = StatusAnonymous
		return state
	}
	if data == nil {
		state.Status = StatusAnonymous
		return state
	}

	state.Status = StatusChecking

	user, err := c.api.Me(ctx, data.AccessToken)
	if err == nil {
		data.User = user
		if err := c.manager.Set(w, data); err != nil {
			c.logger.Warn("Обновление снимка пользователя в cookie не удалось",
				slog.String("error", err.Error()),
			)
		}
		state.Status = StatusAuthenticated
		state.User = user
		state.Data = data
		return state
	}

	if errors.Is(err, apiclient.ErrSessionExpired) {
		ts := c.TokenSource(w, data)
		if _, rerr := ts.Refresh(ctx); rerr == nil {
			state.Status = StatusAuthenticated
			state.User = data.User
			state.Data = data
			return state
		}
		c.logger.Info("Сессия истекла, refresh не удался",
			slog.String("username", data.username()),
		)
		c.manager.Clear(w)
		state.Status = StatusAnonymous
		return state
	}

	// Статус недоказуем (сбой транспорта и т.п.) — fail-closed:
	// cookie очищается, сессия считается отсутствующей
	c.logger.Error("Проверка сессии не удалась",
		slog.String("error", err.Error()),
	)
	c.manager.Clear(w)
	state.Status = StatusAnonymous
	return state
}

// username — имя пользователя из снимка сессии для логов.
func (d *Data) username() string {
	if d == nil || d.User == nil {
		return ""
	}
	return d.User.Username
}

// tokenSource — apiclient.TokenSource, привязанный к данным сессии
// конкретного запроса и его ResponseWriter (для перезаписи cookie
// после refresh).
type tokenSource struct {
	c    *Controller
	w    http.ResponseWriter
	data *Data
}

// TokenSource создаёт источник токенов для аутентифицированных запросов
// в рамках одного HTTP-запроса пользователя.
func (c *Controller) TokenSource(w http.ResponseWriter, data *Data) apiclient.TokenSource {
	return &tokenSource{c: c, w: w, data: data}
}

// AccessToken возвращает текущий access token сессии.
func (t *tokenSource) AccessToken() string {
	if t.data == nil {
		return ""
	}
	return t.data.AccessToken
}

// refreshResult — результат коалесцированного refresh.
type refreshResult struct {
	access string
	user   *apiclient.User
}

// Refresh обновляет access token через refresh token сессии.
// Обновляется только access token — refresh token не ротируется.
// После успешного обмена заново запрашивается снимок пользователя
// и cookie перезаписывается целиком.
func (t *tokenSource) Refresh(ctx context.Context) (string, error) {
	if t.data == nil || t.data.RefreshToken == "" {
		return "", errors.New("refresh token отсутствует")
	}

	v, err, shared := t.c.refreshGroup.Do(t.data.RefreshToken, func() (any, error) {
		access, err := t.c.api.RefreshToken(ctx, t.data.RefreshToken)
		if err != nil {
			return nil, err
		}

		// Снимок пользователя освежается вместе с токеном; его сбой
		// не отменяет refresh — остаётся прежний снимок
		user, err := t.c.api.Me(ctx, access)
		if err != nil {
			t.c.logger.Warn("Обновление снимка пользователя после refresh не удалось",
				slog.String("error", err.Error()),
			)
			user = nil
		}

		return refreshResult{access: access, user: user}, nil
	})
	if err != nil {
		return "", fmt.Errorf("обновление access token: %w", err)
	}

	res := v.(refreshResult)
	t.data.AccessToken = res.access
	if res.user != nil {
		t.data.User = res.user
	}

	if err := t.c.manager.Set(t.w, t.data); err != nil {
		return "", fmt.Errorf("перезапись сессии после refresh: %w", err)
	}

	if shared {
		t.c.logger.Debug("Refresh коалесцирован с конкурентным запросом")
	}

	return res.access, nil
}
