package receipt

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var _ = Describe("Server", func() {
	var (
		store       *MemoryStore
		service     *Service
		server      *Server
		ghttpServer *ghttp.Server
	)

	setupServer := func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
		ghttpServer = ghttp.NewServer()
		ghttpServer.AppendHandlers(server.ServeHTTP)
	}

	BeforeEach(func() {
		store = NewMemoryStore()
		service = NewService(store)
		server = NewServerWithMux(service, http.NewServeMux())
		setupServer()
	})

	AfterEach(func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
	})

	Describe("handleHealth", func() {
		It("should return status ok", func() {
			resp, err := http.Get(ghttpServer.URL() + "/health")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body map[string]string
			Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
			Expect(body).To(HaveKeyWithValue("status", "ok"))
		})
	})

	Describe("handleProcessReceipt", func() {
		var (
			requestBody []byte
			resp        *http.Response
		)

		BeforeEach(func() {
			var err error
			requestBody, err = json.Marshal(Receipt{
				Retailer:     "Target",
				PurchaseDate: "2022-01-01",
				PurchaseTime: "13:01",
				Total:        "35.35",
				Items: []Item{
					{ShortDescription: "Mountain Dew 12PK", Price: "6.49"},
				},
			})
			Expect(err).NotTo(HaveOccurred())
		})

		JustBeforeEach(func() {
			var err error
			resp, err = http.Post(ghttpServer.URL()+"/receipts/process", "application/json", bytes.NewReader(requestBody))
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			resp.Body.Close()
		})

		When("the receipt is valid", func() {
			It("should return status OK", func() {
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
			})

			It("should set Content-Type to application/json", func() {
				Expect(resp.Header.Get("Content-Type")).To(Equal("application/json"))
			})

			It("should return a UUID identifier", func() {
				var body map[string]string
				Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
				Expect(body).To(HaveKey("id"))
				Expect(uuid.Validate(body["id"])).To(Succeed())
			})

			It("should store the score under the returned identifier", func() {
				var body map[string]string
				Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())

				points, err := store.Lookup(body["id"])
				Expect(err).NotTo(HaveOccurred())
				Expect(points).To(Equal(int64(12)))
			})
		})

		When("the body is not valid JSON", func() {
			BeforeEach(func() {
				requestBody = []byte("{not json")
			})

			It("should return status Bad Request", func() {
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			})

			It("should return an error message", func() {
				var body map[string]string
				Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
				Expect(body["error"]).To(Equal("Invalid request body"))
			})
		})

		When("the purchase date is malformed", func() {
			BeforeEach(func() {
				var err error
				requestBody, err = json.Marshal(Receipt{
					Retailer:     "Target",
					PurchaseDate: "01/01/2022",
					PurchaseTime: "13:01",
					Total:        "35.35",
				})
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return status Bad Request", func() {
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			})

			It("should name the offending field", func() {
				var body map[string]string
				Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
				Expect(body["error"]).To(ContainSubstring("purchaseDate"))
			})
		})

		When("the retailer is empty", func() {
			BeforeEach(func() {
				var err error
				requestBody, err = json.Marshal(Receipt{
					Retailer:     "  ",
					PurchaseDate: "2022-01-01",
					PurchaseTime: "13:01",
					Total:        "35.35",
				})
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return status Bad Request", func() {
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			})
		})

		When("an item price is negative", func() {
			BeforeEach(func() {
				var err error
				requestBody, err = json.Marshal(Receipt{
					Retailer:     "Target",
					PurchaseDate: "2022-01-01",
					PurchaseTime: "13:01",
					Total:        "35.35",
					Items: []Item{
						{ShortDescription: "Mountain Dew 12PK", Price: "-6.49"},
					},
				})
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return status Bad Request", func() {
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			})
		})
	})

	Describe("handleGetPoints", func() {
		var (
			id   string
			resp *http.Response
		)

		JustBeforeEach(func() {
			var err error
			resp, err = http.Get(ghttpServer.URL() + "/receipts/" + id + "/points")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			resp.Body.Close()
		})

		When("the score exists", func() {
			BeforeEach(func() {
				var err error
				id, err = store.Insert(109)
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return status OK", func() {
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
			})

			It("should return the stored points", func() {
				var body map[string]int64
				Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
				Expect(body).To(HaveKeyWithValue("points", int64(109)))
			})
		})

		When("the identifier is unknown", func() {
			BeforeEach(func() {
				id = uuid.NewString()
			})

			It("should return status Not Found", func() {
				Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			})
		})

		When("the identifier is not a valid UUID", func() {
			BeforeEach(func() {
				id = "not-a-uuid"
			})

			It("should return status Not Found", func() {
				Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			})

			It("should answer with the same message as a miss", func() {
				body, err := io.ReadAll(resp.Body)
				Expect(err).NotTo(HaveOccurred())
				Expect(string(body)).To(ContainSubstring("Score not found"))
			})
		})
	})
})
