package bills_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"utilitycompare-backend/internal/bills"
	"utilitycompare-backend/internal/bootstrap"
	sharedauth "utilitycompare-backend/internal/shared/auth"
	"utilitycompare-backend/internal/shared/config"
)

func buildApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:3000"},
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		BillsTable:      "UtilityBills",
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func bearer(t *testing.T, sub string) string {
	t.Helper()
	token, err := sharedauth.SignJWT(sharedauth.Claims{Sub: sub, Email: sub + "@example.ie"})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	return "Bearer " + token
}

func TestUploadThenListAndDelete(t *testing.T) {
	app := buildApp(t)
	auth := bearer(t, "google:e2e")

	// Upload a bill document.
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", "march bill.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte("%PDF-1.4 fake")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.WriteField("utilityType", "electricity"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", auth)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d body=%s", resp.Code, resp.Body.String())
	}
	var uploaded struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if uploaded.Key != "users/google:e2e/bills/electricity/march_bill.pdf" {
		t.Fatalf("upload key = %q", uploaded.Key)
	}

	// Simulate the processor having stored a record for the upload.
	record := bills.Record{
		OwnerID:          "google:e2e",
		BillID:           "1710000000000-abcdef123",
		ObjectKey:        uploaded.Key,
		FileName:         "march_bill.pdf",
		UploadTimestamp:  "2024-03-15T10:30:00Z",
		UtilityCategory:  "electricity",
		ProcessingStatus: bills.StatusCompleted,
	}
	if err := app.BillsRepo.Put(context.Background(), record); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	// List.
	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/bills?utilityType=electricity", nil)
	reqList.Header.Set("Authorization", auth)
	respList := httptest.NewRecorder()
	app.Router.ServeHTTP(respList, reqList)

	if respList.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d body=%s", respList.Code, respList.Body.String())
	}
	var listed struct {
		Bills []struct {
			BillID           string `json:"billId"`
			FileName         string `json:"fileName"`
			UtilityType      string `json:"utilityType"`
			ProcessingStatus string `json:"processingStatus"`
		} `json:"bills"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed.Bills) != 1 || listed.Bills[0].BillID != record.BillID {
		t.Fatalf("list = %+v", listed)
	}
	if listed.Bills[0].ProcessingStatus != "completed" {
		t.Fatalf("status = %q", listed.Bills[0].ProcessingStatus)
	}

	// Another user must not see it.
	reqOther := httptest.NewRequest(http.MethodGet, "/api/v1/bills", nil)
	reqOther.Header.Set("Authorization", bearer(t, "google:other"))
	respOther := httptest.NewRecorder()
	app.Router.ServeHTTP(respOther, reqOther)
	var otherList struct {
		Bills []json.RawMessage `json:"bills"`
	}
	if err := json.NewDecoder(respOther.Body).Decode(&otherList); err != nil {
		t.Fatalf("decode other list: %v", err)
	}
	if len(otherList.Bills) != 0 {
		t.Fatalf("cross-user leak: %d bills", len(otherList.Bills))
	}

	// Delete.
	reqDel := httptest.NewRequest(http.MethodDelete, "/api/v1/bills/"+record.BillID, nil)
	reqDel.Header.Set("Authorization", auth)
	respDel := httptest.NewRecorder()
	app.Router.ServeHTTP(respDel, reqDel)
	if respDel.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", respDel.Code)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/bills/"+record.BillID, nil)
	reqGet.Header.Set("Authorization", auth)
	respGet := httptest.NewRecorder()
	app.Router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", respGet.Code)
	}
}

func TestBillsRequireAuth(t *testing.T) {
	app := buildApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bills", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	app := buildApp(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, _ := writer.CreateFormFile("file", "photo.png")
	fileWriter.Write([]byte("png bytes"))
	writer.WriteField("utilityType", "gas")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", bearer(t, "google:e2e"))
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", resp.Code, resp.Body.String())
	}
}
