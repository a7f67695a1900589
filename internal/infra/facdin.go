package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNoAutorizado is returned when the remote API answers 401 — the stored
// bearer token is missing or expired and the UI must redirect to login.
var ErrNoAutorizado = errors.New("facdin: no autorizado")

// RemoteError carries a non-2xx remote response that is not an auth failure.
type RemoteError struct {
	Status  int
	Mensaje string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("facdin: remoto respondio %d: %s", e.Status, e.Mensaje)
}

// FacdinClient is a thin HTTP wrapper around the remote FACDIN invoicing API.
// It attaches the x-api-key header and the caller's bearer token to every
// request and runs each call through a circuit breaker so a dead backend
// fast-fails instead of stalling the cashier. Invoices, users and cash
// register state are remote-authoritative; this client never touches the
// local store.
type FacdinClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewFacdinClient(baseURL, apiKey string, cb *CircuitBreaker) *FacdinClient {
	return &FacdinClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		// Fixed timeout — the only timeout in the system; the local store has none.
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cb:         cb,
	}
}

// Breaker exposes the circuit breaker state for the health endpoint.
func (c *FacdinClient) Breaker() *CircuitBreaker { return c.cb }

// do performs one request through the circuit breaker. Only transport errors
// and 5xx responses count as breaker failures; 4xx are valid remote answers.
func (c *FacdinClient) do(ctx context.Context, method, path, token string, body interface{}) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("facdin: marshal payload: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("facdin: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	var (
		status int
		raw    []byte
	)
	err = c.cb.Execute(func() error {
		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			return fmt.Errorf("facdin: remoto inalcanzable: %w", doErr)
		}
		defer resp.Body.Close()

		status = resp.StatusCode
		raw, doErr = io.ReadAll(resp.Body)
		if doErr != nil {
			return fmt.Errorf("facdin: leer respuesta: %w", doErr)
		}
		if status >= http.StatusInternalServerError {
			return &RemoteError{Status: status, Mensaje: remoteMessage(raw)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusUnauthorized:
		return nil, ErrNoAutorizado
	case status >= http.StatusBadRequest:
		return nil, &RemoteError{Status: status, Mensaje: remoteMessage(raw)}
	}
	return raw, nil
}

// remoteMessage extracts the {"error": "..."} detail the FACDIN API uses,
// falling back to the raw body.
func remoteMessage(raw []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Mensaje string `json:"mensaje"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Mensaje != "" {
			return envelope.Mensaje
		}
	}
	return string(raw)
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

func (c *FacdinClient) Login(ctx context.Context, credenciales interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/usuarios/login", "", credenciales)
}

func (c *FacdinClient) PrimerAdminExiste(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/usuarios/primero-existe", "", nil)
}

func (c *FacdinClient) RegistrarPrimerAdmin(ctx context.Context, datos interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/usuarios/registrar-primer-admin", "", datos)
}

func (c *FacdinClient) RegistrarUsuario(ctx context.Context, token string, datos interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/usuarios/registrar", token, datos)
}

// ── Facturas ─────────────────────────────────────────────────────────────────

func (c *FacdinClient) InsertarFactura(ctx context.Context, token string, factura interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/facturas/insertar", token, factura)
}

func (c *FacdinClient) FacturasRecientes(ctx context.Context, token string, limit, offset int, search string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	if search != "" {
		q.Set("search", search)
	}
	return c.do(ctx, http.MethodGet, "/facturas/recientes?"+q.Encode(), token, nil)
}

func (c *FacdinClient) DetalleFactura(ctx context.Context, token, facturaID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/facturas/detalle/"+url.PathEscape(facturaID), token, nil)
}

func (c *FacdinClient) VerificarFactura(ctx context.Context, token, numeroFactura string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/facturas/"+url.PathEscape(numeroFactura), token, nil)
}

func (c *FacdinClient) EstadisticasFacturas(ctx context.Context, token, fecha string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/facturas/estadisticas?fecha="+url.QueryEscape(fecha), token, nil)
}

// ── Caja ─────────────────────────────────────────────────────────────────────

func (c *FacdinClient) AbrirCaja(ctx context.Context, token string, datos interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/caja/abrir", token, datos)
}

func (c *FacdinClient) CerrarCaja(ctx context.Context, token string, datos interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/caja/cerrar", token, datos)
}

// ── Notas de crédito / débito ────────────────────────────────────────────────

func (c *FacdinClient) CrearNota(ctx context.Context, token string, nota interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/notas/crear", token, nota)
}
