package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petcare-tracker/internal/domain/entitlements"
	"petcare-tracker/internal/router"
)

func TestHTTP_EndToEnd_FreeTierAndUpcoming(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Dos mascotas entran en el tier gratuito
	petID := createPet(t, ts.URL, map[string]any{"name": "Milo", "species": "dog"})
	createPet(t, ts.URL, map[string]any{"name": "Luna", "species": "cat"})

	// 2) La tercera devuelve 402 con el detalle del límite
	{
		st, body := doReq(t, ts.URL, "POST", "/pets", map[string]any{"name": "Rex", "species": "dog"})
		if st != http.StatusPaymentRequired {
			t.Fatalf("expected 402 third pet, got %d body=%s", st, string(body))
		}
		var resp struct {
			Resource string `json:"resource"`
			Limit    int    `json:"limit"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Resource != "pets" || resp.Limit != 2 {
			t.Fatalf("unexpected limit body=%s", string(body))
		}
	}

	// 3) Cuidado y recordatorio dentro de la ventana por defecto
	due := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	{
		st, body := doReq(t, ts.URL, "POST", "/care-items", map[string]any{
			"pet_id":   petID,
			"type":     "vaccine",
			"title":    "Rabia",
			"due_date": due,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create care item, got %d body=%s", st, string(body))
		}
	}
	reminderID := createReminder(t, ts.URL, map[string]any{
		"pet_id":    petID,
		"title":     "Pastilla",
		"date_time": time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"repeat":    "daily",
	})

	// 4) El feed mezcla ambos, el recordatorio primero
	if kinds := upcomingKinds(t, ts.URL); len(kinds) != 2 || kinds[0] != "reminder" || kinds[1] != "care" {
		t.Fatalf("expected [reminder care], got %v", kinds)
	}

	// 5) Desactivar el recordatorio lo saca del feed
	{
		st, body := doReq(t, ts.URL, "POST", "/reminders/"+reminderID+"/toggle", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 toggle, got %d body=%s", st, string(body))
		}
		var resp struct {
			Enabled bool `json:"enabled"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Enabled {
			t.Fatalf("expected reminder disabled body=%s", string(body))
		}
	}
	if kinds := upcomingKinds(t, ts.URL); len(kinds) != 1 || kinds[0] != "care" {
		t.Fatalf("expected [care], got %v", kinds)
	}

	// 6) Borrar la mascota arrastra sus cuidados y recordatorios
	{
		st, body := doReq(t, ts.URL, "DELETE", "/pets/"+petID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete pet, got %d body=%s", st, string(body))
		}
	}
	if kinds := upcomingKinds(t, ts.URL); len(kinds) != 0 {
		t.Fatalf("expected empty feed after cascade, got %v", kinds)
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/reminders", nil)
		if st != http.StatusOK || string(bytes.TrimSpace(body)) != "[]" {
			t.Fatalf("expected no reminders left, got %d body=%s", st, string(body))
		}
	}

	// 7) Ahora sí entra una mascota nueva
	createPet(t, ts.URL, map[string]any{"name": "Rex", "species": "dog"})
}

func TestHTTP_PremiumLiftsLimits(t *testing.T) {
	ent := entitlements.NewService(nil, entitlements.Options{CouponCodes: []string{"VIP"}})
	ts := httptest.NewServer(router.NewRouter(router.Options{Entitlements: ent}))
	defer ts.Close()

	createPet(t, ts.URL, map[string]any{"name": "A", "species": "dog"})
	createPet(t, ts.URL, map[string]any{"name": "B", "species": "dog"})

	if petsCanAdd(t, ts.URL) {
		t.Fatalf("expected can_add=false at the free pet limit")
	}

	{
		st, body := doReq(t, ts.URL, "POST", "/entitlements/redeem", map[string]any{"code": "vip"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 redeem, got %d body=%s", st, string(body))
		}
	}

	if !petsCanAdd(t, ts.URL) {
		t.Fatalf("expected can_add=true after redeem")
	}
	createPet(t, ts.URL, map[string]any{"name": "C", "species": "dog"})
}

func petsCanAdd(t *testing.T, baseURL string) bool {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/limits", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 limits, got %d body=%s", st, string(body))
	}

	var resp struct {
		Pets struct {
			Count  int  `json:"count"`
			CanAdd bool `json:"can_add"`
		} `json:"pets"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode limits: %v", err)
	}
	if resp.Pets.Count != 2 {
		t.Fatalf("expected 2 pets counted, got %d body=%s", resp.Pets.Count, string(body))
	}
	return resp.Pets.CanAdd
}

func TestHTTP_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	cases := []struct {
		name, method, path string
		body               any
		want               int
	}{
		{"empty pet name", "POST", "/pets", map[string]any{"name": "  ", "species": "dog"}, http.StatusBadRequest},
		{"unknown field", "POST", "/pets", map[string]any{"name": "Milo", "species": "dog", "owner": "x"}, http.StatusBadRequest},
		{"care for unknown pet", "POST", "/care-items", map[string]any{"pet_id": "nope", "type": "vaccine", "title": "x", "due_date": "2030-01-01"}, http.StatusBadRequest},
		{"bad due date", "POST", "/care-items", map[string]any{"pet_id": "nope", "type": "vaccine", "title": "x", "due_date": "01/01/2030"}, http.StatusBadRequest},
		{"patch unknown pet", "PATCH", "/pets/nope", map[string]any{"name": "x"}, http.StatusNotFound},
		{"delete unknown reminder", "DELETE", "/reminders/nope", nil, http.StatusNotFound},
		{"bad window", "GET", "/upcoming?days=0", nil, http.StatusBadRequest},
		{"window not allowed", "PUT", "/settings/upcoming-care-days", map[string]any{"days": 10}, http.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st, body := doReq(t, ts.URL, c.method, c.path, c.body)
			if st != c.want {
				t.Fatalf("expected %d, got %d body=%s", c.want, st, string(body))
			}
		})
	}
}

func TestHTTP_HealthAndSettings(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	if st, _ := doReq(t, ts.URL, "GET", "/health", nil); st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}

	st, body := doReq(t, ts.URL, "PUT", "/settings/upcoming-care-days", map[string]any{"days": 30})
	if st != http.StatusOK {
		t.Fatalf("expected 200 put settings, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/upcoming", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 upcoming, got %d", st)
	}
	var resp struct {
		Days int `json:"days"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Days != 30 {
		t.Fatalf("expected configured window 30, got %d", resp.Days)
	}
}

func createPet(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func createReminder(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/reminders", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create reminder, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create reminder: missing id body=%s", string(body))
	}
	return resp.ID
}

func upcomingKinds(t *testing.T, baseURL string) []string {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/upcoming", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 upcoming, got %d body=%s", st, string(body))
	}

	var resp struct {
		Items []struct {
			Kind string `json:"kind"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode upcoming: %v", err)
	}
	out := make([]string, 0, len(resp.Items))
	for _, it := range resp.Items {
		out = append(out, it.Kind)
	}
	return out
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
