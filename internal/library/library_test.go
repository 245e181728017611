package library

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"

	"Barnframe/internal/auth"
	"Barnframe/internal/calc/opening"
	"Barnframe/internal/design"
	"Barnframe/internal/repo"
)

func newRouter(t *testing.T, userID int) (*mux.Router, *repo.SQLDesignRepository) {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "designs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	store := repo.NewSQLiteDesignDB(db)
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatal(err)
	}

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
		})
	})
	(&Handler{Repo: store}).Register(r)
	return r, store
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func TestDesignRoutes(t *testing.T) {
	r, store := newRouter(t, 5)

	d := design.New()
	d.Items = []design.Item{{Type: design.Window, Wall: opening.Front, Position: 1, Width: 1000, Height: 1000, Elevation: 1000}}
	rec := do(r, http.MethodPost, "/designs", SaveRequest{Design: d})
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d: %s", rec.Code, rec.Body)
	}
	var saved repo.StoredDesign
	if err := json.NewDecoder(rec.Body).Decode(&saved); err != nil {
		t.Fatal(err)
	}
	if saved.Design.Items[0].ID == "" || saved.Design.Items[0].Name != "Raam" {
		t.Errorf("design not normalized before save: %+v", saved.Design.Items[0])
	}

	rec = do(r, http.MethodGet, "/designs", nil)
	var list []Entry
	json.NewDecoder(rec.Body).Decode(&list)
	if len(list) != 1 || list[0].ID != saved.ID || list[0].Items != 1 {
		t.Errorf("list = %+v", list)
	}

	if rec := do(r, http.MethodGet, "/designs/"+saved.ID, nil); rec.Code != http.StatusOK {
		t.Errorf("get status = %d", rec.Code)
	}

	// another user cannot see or delete it
	if _, err := store.GetDesign(context.Background(), 6, saved.ID); err == nil {
		t.Error("design visible to another owner")
	}

	if rec := do(r, http.MethodDelete, "/designs/"+saved.ID, nil); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	if rec := do(r, http.MethodGet, "/designs/"+saved.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	r, _ := newRouter(t, 5)
	d := design.New()
	d.Dimensions.Width = 0
	if rec := do(r, http.MethodPost, "/designs", SaveRequest{Design: d}); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUnauthenticated(t *testing.T) {
	rec := httptest.NewRecorder()
	(&Handler{}).List(rec, httptest.NewRequest(http.MethodGet, "/designs", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
