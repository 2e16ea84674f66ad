package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"taxgate/internal/audit"
	"taxgate/internal/auth"
	authmocks "taxgate/internal/auth/mocks"
	"taxgate/internal/platform/logger"
	"taxgate/internal/returns"
	"taxgate/internal/returns/handler"
	"taxgate/internal/returns/store"
	id "taxgate/pkg/domain"
)

const submitBody = `{
	"periodKey": "24A1",
	"vatDueSales": 100.30,
	"vatDueAcquisitions": 100.02,
	"totalVatDue": 200.32,
	"vatReclaimedCurrPeriod": 50.00,
	"netVatDue": 150.32,
	"totalValueSalesExVAT": 1000,
	"totalValuePurchasesExVAT": 200,
	"totalValueGoodsSuppliedExVAT": 0,
	"totalAcquisitionsExVAT": 0,
	"finalised": true
}`

type HandlerSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	authorizer *authmocks.MockAuthorizer
	router     chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.authorizer = authmocks.NewMockAuthorizer(s.ctrl)

	policy := auth.Policy{
		AuthProvider:       auth.ProviderGovernmentGateway,
		EnrolmentKey:       "HMRC-MTD-VAT",
		IdentifierKey:      "VRN",
		MinimumConfidence:  250,
		CredentialStrength: "strong",
		AffinityGroup:      "Organisation",
	}
	gate := auth.NewGate(s.authorizer, policy, nil)

	log := logger.New()
	service := returns.NewService(store.NewInMemory(), audit.NewPublisher(16), nil)
	h := handler.New(service, gate, log, nil)

	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

// allow makes the authorizer accept the session as the holder of the given VRN.
func (s *HandlerSuite) allow(vrn string) {
	iid := id.InternalID("int-id-1")
	s.authorizer.EXPECT().
		Authorise(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&auth.Outcome{
			InternalID: &iid,
			Enrolments: auth.Enrolments{{
				Key:         "HMRC-MTD-VAT",
				Identifiers: []auth.Identifier{{Key: "VRN", Value: vrn}},
				State:       "Activated",
			}},
		}, nil).
		AnyTimes()
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer session-token")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestSubmitThenView() {
	s.allow("123456789")

	rec := s.do(http.MethodPost, "/organisations/vat/123456789/returns", submitBody)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var receipt returns.Receipt
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &receipt))
	s.NotEmpty(receipt.FormBundleNumber)

	rec = s.do(http.MethodGet, "/organisations/vat/123456789/returns/24A1", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var vr returns.VATReturn
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &vr))
	s.Equal(200.32, vr.TotalVATDue)
}

func (s *HandlerSuite) TestDuplicateSubmissionConflict() {
	s.allow("123456789")

	rec := s.do(http.MethodPost, "/organisations/vat/123456789/returns", submitBody)
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/organisations/vat/123456789/returns", submitBody)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *HandlerSuite) TestUnauthorizedSessionRejected() {
	s.authorizer.EXPECT().
		Authorise(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, auth.Denied(auth.ReasonInsufficientEnrolments))

	rec := s.do(http.MethodPost, "/organisations/vat/123456789/returns", submitBody)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Empty(rec.Body.String())
}

func (s *HandlerSuite) TestOtherRegistrationForbidden() {
	s.allow("999999999")

	rec := s.do(http.MethodPost, "/organisations/vat/123456789/returns", submitBody)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *HandlerSuite) TestInvalidBodyRejected() {
	s.allow("123456789")

	rec := s.do(http.MethodPost, "/organisations/vat/123456789/returns", "{not json")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestMalformedVRNRejected() {
	s.allow("123456789")

	rec := s.do(http.MethodGet, "/organisations/vat/12345/returns/24A1", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestMissingReturnNotFound() {
	s.allow("123456789")

	rec := s.do(http.MethodGet, "/organisations/vat/123456789/returns/24A9", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestNonJSONContentTypeRejected() {
	rec := s.do(http.MethodPost, "/organisations/vat/123456789/returns", "")
	s.Equal(http.StatusUnsupportedMediaType, rec.Code)
}
