package dswd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"congress-api/internal/importer"
)

func TestBulk_UsesUploadSuccessfulMessage(t *testing.T) {
	svc := &DswdService{DB: newTestDB(t)}
	ls := &mockLogService{}
	r := setupRouter(svc, ls)

	payload, _ := json.Marshal([]importer.Row{fullRow("Santos"), fullRow("Reyes")})
	body, ct := multipartJSON(t, string(payload))
	w := doMultipart(r, "/dswd/bulk", body, ct)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	out := decodeBody(t, w)
	if out["message"] != "Upload successful" || out["inserted"] != float64(2) {
		t.Fatalf("body = %s", w.Body.String())
	}
	if len(ls.entries) != 1 || ls.entries[0].Service != "dswd" {
		t.Fatalf("entries = %+v", ls.entries)
	}
}

func TestUpdateStatus_ByID(t *testing.T) {
	svc := &DswdService{DB: newTestDB(t)}
	ls := &mockLogService{}
	r := setupRouter(svc, ls)

	a, err := svc.Create(fullRow("Santos"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	b, err := svc.Create(fullRow("Reyes"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := doJSON(r, http.MethodPost, "/dswd/status", StatusUpdateInput{
		IDs:    []uint{a.ID, b.ID},
		Status: "claimed",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	out := decodeBody(t, w)
	if out["message"] != "Successfully updated 2 rows to claimed" {
		t.Fatalf("body = %s", w.Body.String())
	}

	claimed, err := svc.ListClaimed()
	if err != nil || len(claimed) != 2 {
		t.Fatalf("claimed = %d err = %v", len(claimed), err)
	}
	if len(ls.entries) != 1 || ls.entries[0].Action != "UPDATE_STATUS" {
		t.Fatalf("entries = %+v", ls.entries)
	}
}

func TestUpdateStatus_MissingFields(t *testing.T) {
	r := setupRouter(&DswdService{DB: newTestDB(t)}, &mockLogService{})

	w := doJSON(r, http.MethodPost, "/dswd/status", map[string]any{"ids": []uint{1}})
	if w.Code != http.StatusBadRequest || decodeBody(t, w)["error"] != "Rows or status missing" {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestClaimedEndpoint_FiltersStatus(t *testing.T) {
	svc := &DswdService{DB: newTestDB(t)}
	r := setupRouter(svc, &mockLogService{})

	a, err := svc.Create(fullRow("Santos"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Create(fullRow("Reyes")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.UpdateStatus([]uint{a.ID}, "claimed"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	w := doJSON(r, http.MethodGet, "/dswd/claimed", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var claimed []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &claimed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(claimed) != 1 || claimed[0]["lastname"] != "Santos" {
		t.Fatalf("claimed = %+v", claimed)
	}

	w = doJSON(r, http.MethodGet, "/dswd/unclaimed", nil)
	var unclaimed []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &unclaimed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(unclaimed) != 1 || unclaimed[0]["lastname"] != "Reyes" {
		t.Fatalf("unclaimed = %+v", unclaimed)
	}
}

func TestGetByID_RouteDoesNotShadowClaimed(t *testing.T) {
	svc := &DswdService{DB: newTestDB(t)}
	r := setupRouter(svc, &mockLogService{})

	rec, err := svc.Create(fullRow("Santos"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/dswd/%d", rec.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["lastname"] != "Santos" {
		t.Fatalf("body = %s", w.Body.String())
	}
}
