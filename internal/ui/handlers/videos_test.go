package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

// TestVideosHandler_List проверяет рендеринг каталога видео.
func TestVideosHandler_List(t *testing.T) {
	api, controller := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/videos/":
			if r.URL.Query().Get("category") != "" {
				t.Errorf("без фильтра параметр category не должен передаваться")
			}
			fmt.Fprint(w, `{"videos":[
				{"id":1,"title":"Введение в Go","category_name":"Основы"},
				{"id":2,"title":"Горутины","category_name":"Основы"}
			],"count":2}`)
		case "/api/categories/":
			fmt.Fprint(w, `{"categories":[{"id":5,"name":"Основы","video_count":2}],"count":1}`)
		default:
			t.Errorf("неожиданный путь %s", r.URL.Path)
		}
	})

	h := NewVideosHandler(api, controller, testLogger())
	router := testRouter(testUser(false), func(r chi.Router) {
		r.Get("/videos", h.HandleList)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался статус 200, получен %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Введение в Go") || !strings.Contains(body, "Горутины") {
		t.Error("названия видео отсутствуют в ответе")
	}
	if !strings.Contains(body, "Основы") {
		t.Error("категория отсутствует в фильтре")
	}
}

// TestVideosHandler_List_CategoryFilter проверяет передачу фильтра
// категории в API платформы.
func TestVideosHandler_List_CategoryFilter(t *testing.T) {
	api, controller := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/videos/":
			if got := r.URL.Query().Get("category"); got != "5" {
				t.Errorf("ожидался category=5, получен %q", got)
			}
			fmt.Fprint(w, `{"videos":[],"count":0}`)
		case "/api/categories/":
			fmt.Fprint(w, `{"categories":[],"count":0}`)
		}
	})

	h := NewVideosHandler(api, controller, testLogger())
	router := testRouter(testUser(false), func(r chi.Router) {
		r.Get("/videos", h.HandleList)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos?category=5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался статус 200, получен %d", rec.Code)
	}
}

// TestVideosHandler_Detail проверяет детальную страницу видео.
func TestVideosHandler_Detail(t *testing.T) {
	api, controller := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/videos/42/" {
			t.Errorf("неожиданный путь %s", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"video":{"id":42,"title":"Каналы","embed_url":"https://www.youtube.com/embed/abc","description":"Про каналы"},
			"related_videos":[{"id":43,"title":"Select"}]
		}`)
	})

	h := NewVideosHandler(api, controller, testLogger())
	router := testRouter(testUser(false), func(r chi.Router) {
		r.Get("/videos/{id}", h.HandleDetail)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos/42", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался статус 200, получен %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Каналы") {
		t.Error("название видео отсутствует")
	}
	if !strings.Contains(body, "youtube.com/embed/abc") {
		t.Error("embed-плеер отсутствует")
	}
	if !strings.Contains(body, "Select") {
		t.Error("связанные видео отсутствуют")
	}
}

// TestVideosHandler_Detail_NotFound проверяет экран 404 для
// несуществующего видео.
func TestVideosHandler_Detail_NotFound(t *testing.T) {
	api, controller := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail":"Not found."}`)
	})

	h := NewVideosHandler(api, controller, testLogger())
	router := testRouter(testUser(false), func(r chi.Router) {
		r.Get("/videos/{id}", h.HandleDetail)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos/999", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("ожидался статус 404, получен %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "не найдена") {
		t.Error("ожидался экран «страница не найдена»")
	}
}

// TestVideosHandler_Detail_BadID проверяет нечисловой ID в пути.
func TestVideosHandler_Detail_BadID(t *testing.T) {
	api, controller := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("запросов к API быть не должно")
	})

	h := NewVideosHandler(api, controller, testLogger())
	router := testRouter(testUser(false), func(r chi.Router) {
		r.Get("/videos/{id}", h.HandleDetail)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos/abc", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("ожидался статус 404, получен %d", rec.Code)
	}
}
