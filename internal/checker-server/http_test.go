package checkerserver_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oscarsebastian/jup-airdrop-checker/internal/checker"
	checkerserver "github.com/oscarsebastian/jup-airdrop-checker/internal/checker-server"
	jupclient "github.com/oscarsebastian/jup-airdrop-checker/internal/jup-client"
	"github.com/oscarsebastian/jup-airdrop-checker/internal/summary"
	"github.com/oscarsebastian/jup-airdrop-checker/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

const checkEndpoint = "/api/v1/check"

type fakeService struct {
	wallets []string
	report  models.Report
	err     error
}

func (f *fakeService) Check(_ context.Context, wallets []string) (models.Report, error) {
	f.wallets = wallets

	if len(wallets) == 0 {
		return models.Report{}, checker.ErrNoWallets
	}

	return f.report, f.err
}

type ServerTestSuite struct {
	suite.Suite
	service    *fakeService
	server     *httptest.Server
	privateKey *rsa.PrivateKey
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupSuite() {
	var err error

	s.privateKey, err = rsa.GenerateKey(rand.Reader, 2048)
	s.Require().NoError(err)
}

func (s *ServerTestSuite) SetupTest() {
	s.service = &fakeService{
		report: models.Report{
			RunID: uuid.New(),
			Wallets: []models.RankedWallet{
				{Wallet: "A", Total: decimal.RequireFromString("15.01"), Operations: 3, Years: "2023,2024"},
			},
			Qualified: 1,
		},
	}
	s.server = httptest.NewServer(checkerserver.NewRouter(s.service, logrus.StandardLogger(), nil))
}

func (s *ServerTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ServerTestSuite) sendRequest(method, endpoint, token string, body io.Reader, dest interface{}) *http.Response {
	s.T().Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, endpoint, body)
	s.Require().NoError(err)

	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)

	defer func() {
		err = resp.Body.Close()
		s.Require().NoError(err)
	}()

	if dest != nil && resp.StatusCode == http.StatusOK {
		err = json.NewDecoder(resp.Body).Decode(dest)
		s.Require().NoError(err)
	}

	return resp
}

func (s *ServerTestSuite) token(expiresIn time.Duration) string {
	s.T().Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   "tester",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})

	signed, err := token.SignedString(s.privateKey)
	s.Require().NoError(err)

	return signed
}

func (s *ServerTestSuite) TestCheck() {
	s.Run("get with query wallets", func() {
		var report models.Report

		resp := s.sendRequest(http.MethodGet, s.server.URL+checkEndpoint+"?wallet=A&wallet=B", "", nil, &report)

		s.Require().Equal(http.StatusOK, resp.StatusCode)
		s.Require().Equal([]string{"A", "B"}, s.service.wallets)
		s.Require().Equal(s.service.report.RunID, report.RunID)
		s.Require().Len(report.Wallets, 1)
		s.Require().Equal("15.01", report.Wallets[0].Total.String())
		s.Require().Equal(1, report.Qualified)
	})

	s.Run("post with json body", func() {
		body, err := json.Marshal(models.CheckRequest{Wallets: []string{"C"}})
		s.Require().NoError(err)

		resp := s.sendRequest(http.MethodPost, s.server.URL+checkEndpoint, "", bytes.NewReader(body), nil)

		s.Require().Equal(http.StatusOK, resp.StatusCode)
		s.Require().Equal([]string{"C"}, s.service.wallets)
	})

	s.Run("post with broken json", func() {
		resp := s.sendRequest(http.MethodPost, s.server.URL+checkEndpoint, "", bytes.NewReader([]byte("{")), nil)
		s.Require().Equal(http.StatusBadRequest, resp.StatusCode)
	})

	s.Run("no wallets", func() {
		resp := s.sendRequest(http.MethodGet, s.server.URL+checkEndpoint, "", nil, nil)
		s.Require().Equal(http.StatusBadRequest, resp.StatusCode)
	})
}

func (s *ServerTestSuite) TestErrors() {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"empty wallet", fmt.Errorf("wallet 0: %w", checker.ErrEmptyWallet), http.StatusBadRequest},
		{"malformed", &summary.MalformedRecordError{Index: 0, Field: "timestamp"}, http.StatusUnprocessableEntity},
		{"exhausted", &jupclient.ExhaustedRetriesError{Wallet: "A", Attempts: 3}, http.StatusBadGateway},
		{"status", fmt.Errorf("wallet A: %w", &jupclient.StatusError{Wallet: "A", StatusCode: 404}), http.StatusBadGateway},
		{"other", context.Canceled, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.service.err = tc.err

			resp := s.sendRequest(http.MethodGet, s.server.URL+checkEndpoint+"?wallet=A", "", nil, nil)
			s.Require().Equal(tc.code, resp.StatusCode)
		})
	}
}

func (s *ServerTestSuite) TestMetrics() {
	resp := s.sendRequest(http.MethodGet, s.server.URL+"/metrics", "", nil, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
}

func (s *ServerTestSuite) TestJWTAuth() {
	server := httptest.NewServer(checkerserver.NewRouter(s.service, logrus.StandardLogger(), &s.privateKey.PublicKey))
	defer server.Close()

	s.Run("valid token", func() {
		resp := s.sendRequest(http.MethodGet, server.URL+checkEndpoint+"?wallet=A", s.token(time.Hour), nil, nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
	})

	s.Run("missing token", func() {
		resp := s.sendRequest(http.MethodGet, server.URL+checkEndpoint+"?wallet=A", "", nil, nil)
		s.Require().Equal(http.StatusUnauthorized, resp.StatusCode)
	})

	s.Run("expired token", func() {
		resp := s.sendRequest(http.MethodGet, server.URL+checkEndpoint+"?wallet=A", s.token(-time.Hour), nil, nil)
		s.Require().Equal(http.StatusUnauthorized, resp.StatusCode)
	})

	s.Run("foreign key", func() {
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		s.Require().NoError(err)

		signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{Subject: "x"}).
			SignedString(otherKey)
		s.Require().NoError(err)

		resp := s.sendRequest(http.MethodGet, server.URL+checkEndpoint+"?wallet=A", signed, nil, nil)
		s.Require().Equal(http.StatusUnauthorized, resp.StatusCode)
	})

	s.Run("metrics stay public", func() {
		resp := s.sendRequest(http.MethodGet, server.URL+"/metrics", "", nil, nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
	})
}

func (s *ServerTestSuite) TestLoadPublicKey() {
	der, err := x509.MarshalPKIXPublicKey(&s.privateKey.PublicKey)
	s.Require().NoError(err)

	path := filepath.Join(s.T().TempDir(), "public.pem")

	err = os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), 0o600)
	s.Require().NoError(err)

	key, err := checkerserver.LoadPublicKey(path)
	s.Require().NoError(err)
	s.Require().True(key.Equal(&s.privateKey.PublicKey))

	_, err = checkerserver.LoadPublicKey(filepath.Join(s.T().TempDir(), "missing.pem"))
	s.Require().Error(err)
}
