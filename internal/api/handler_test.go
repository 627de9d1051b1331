package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/abhisek/ideaforge/internal/api"
	"github.com/abhisek/ideaforge/internal/app"
	"github.com/abhisek/ideaforge/internal/conversation"
	"github.com/abhisek/ideaforge/internal/store"
)

var answers = []string{
	"Commuters lose twenty minutes every morning circling for parking, a daily problem.",
	"Downtown office workers who drive in daily and pay for monthly garage passes.",
	"The value is a guaranteed slot reserved from the phone before leaving home.",
	"A per-minute fee charged to each customer who reserves a garage slot",
	"Exclusive partnerships with the three biggest downtown garage operators.",
}

var _ = Describe("Handler", func() {
	var (
		router *gin.Engine
		st     *store.Store
	)

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder) map[string]any {
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return resp
	}

	createSession := func() string {
		w := do(http.MethodPost, "/api/v1/sessions", map[string]string{
			"idea":   "Parking reservations for downtown commuters",
			"locale": "en-US",
		})
		Expect(w.Code).To(Equal(http.StatusCreated))
		return decode(w)["id"].(string)
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)

		var err error
		st, err = store.Open(filepath.Join(GinkgoT().TempDir(), "api.db"))
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(st.Close)

		a := app.New(app.Options{
			Ideas:     st.IdeaRepo(),
			Scheduler: conversation.ImmediateScheduler{},
		})
		router = api.NewRouter(a)
	})

	It("reports health", func() {
		w := do(http.MethodGet, "/health", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["status"]).To(Equal("ok"))
	})

	Describe("quality", func() {
		It("scores text", func() {
			w := do(http.MethodPost, "/api/v1/quality", map[string]string{"text": "parking bad"})
			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["score"]).To(BeNumerically("==", 10))
			Expect(resp["level"]).To(Equal("basic"))
			Expect(resp["needs_expansion"]).To(BeTrue())
		})

		It("rejects a missing text", func() {
			w := do(http.MethodPost, "/api/v1/quality", map[string]string{})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("sessions", func() {
		It("starts with a welcome and the first question", func() {
			w := do(http.MethodPost, "/api/v1/sessions", map[string]string{"idea": "Parking reservations"})
			Expect(w.Code).To(Equal(http.StatusCreated))

			resp := decode(w)
			Expect(resp["status"]).To(Equal("awaiting_answer"))
			Expect(resp["module"]).To(Equal("problem_definition"))
			Expect(resp["transcript"]).To(HaveLen(2))
		})

		It("rejects a missing idea", func() {
			w := do(http.MethodPost, "/api/v1/sessions", map[string]string{"locale": "es"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for unknown sessions", func() {
			Expect(do(http.MethodGet, "/api/v1/sessions/nope", nil).Code).To(Equal(http.StatusNotFound))
			Expect(do(http.MethodPost, "/api/v1/sessions/nope/answers", map[string]string{"answer": "hi"}).Code).
				To(Equal(http.StatusNotFound))
		})

		It("returns 422 for an empty answer", func() {
			id := createSession()
			w := do(http.MethodPost, "/api/v1/sessions/"+id+"/answers", map[string]string{"answer": " "})
			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(decode(w)["error"]).To(ContainSubstring("empty"))
		})

		It("asks a follow-up for a thin answer", func() {
			id := createSession()
			w := do(http.MethodPost, "/api/v1/sessions/"+id+"/answers", map[string]string{"answer": "parking bad"})
			Expect(w.Code).To(Equal(http.StatusOK))

			resp := decode(w)
			Expect(resp["module_index"]).To(BeNumerically("==", 0))
			Expect(resp["status"]).To(Equal("awaiting_answer"))
			progress := resp["progress"].(map[string]any)["problem_definition"].(map[string]any)
			Expect(progress["needs_more"]).To(BeTrue())
		})

		It("completes, persists and serves the idea", func() {
			id := createSession()

			var resp map[string]any
			for _, a := range answers {
				w := do(http.MethodPost, "/api/v1/sessions/"+id+"/answers", map[string]string{"answer": a})
				Expect(w.Code).To(Equal(http.StatusOK))
				resp = decode(w)
			}
			Expect(resp["status"]).To(Equal("completed"))
			result := resp["result"].(map[string]any)
			Expect(result["overall_completeness"]).To(BeNumerically(">=", 75))
			ideaID := result["id"].(string)

			// Finished sessions leave the registry.
			Expect(do(http.MethodGet, "/api/v1/sessions/"+id, nil).Code).To(Equal(http.StatusNotFound))

			w := do(http.MethodGet, "/api/v1/ideas", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			var list []map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &list)).To(Succeed())
			Expect(list).To(HaveLen(1))
			Expect(list[0]["id"]).To(Equal(ideaID))

			w = do(http.MethodGet, "/api/v1/ideas/"+ideaID, nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			idea := decode(w)
			Expect(idea["modules"]).To(HaveLen(5))
			Expect(idea["narrative"]).NotTo(BeEmpty())
		})

		It("force-completes a session", func() {
			id := createSession()
			do(http.MethodPost, "/api/v1/sessions/"+id+"/answers", map[string]string{"answer": answers[0]})

			w := do(http.MethodPost, "/api/v1/sessions/"+id+"/complete", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["modules"]).To(HaveLen(1))
			Expect(resp["grade"]).NotTo(BeEmpty())
		})

		It("cancels idempotently", func() {
			id := createSession()
			Expect(do(http.MethodDelete, "/api/v1/sessions/"+id, nil).Code).To(Equal(http.StatusNoContent))
			Expect(do(http.MethodDelete, "/api/v1/sessions/"+id, nil).Code).To(Equal(http.StatusNoContent))
			Expect(do(http.MethodGet, "/api/v1/sessions/"+id, nil).Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("ideas", func() {
		It("returns 404 for an unknown idea", func() {
			Expect(do(http.MethodGet, "/api/v1/ideas/missing", nil).Code).To(Equal(http.StatusNotFound))
		})

		It("rejects a bad limit", func() {
			Expect(do(http.MethodGet, "/api/v1/ideas?limit=x", nil).Code).To(Equal(http.StatusBadRequest))
		})

		It("lists nothing on an empty store", func() {
			w := do(http.MethodGet, "/api/v1/ideas", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`[]`))
		})
	})
})
