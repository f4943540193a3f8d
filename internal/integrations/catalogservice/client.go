package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с CatalogService (услуги, сотрудники, переопределения)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetService получает услугу по ID
func (c *Client) GetService(ctx context.Context, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// GetStaff получает сотрудника по ID
func (c *Client) GetStaff(ctx context.Context, staffID int64) (*Staff, error) {
	url := fmt.Sprintf("%s/internal/staff/%d", c.baseURL, staffID)

	var staff Staff
	if err := c.getJSON(ctx, url, &staff, ErrStaffNotFound); err != nil {
		return nil, err
	}

	return &staff, nil
}

// GetEligibleStaff получает активных сотрудников, оказывающих услугу
func (c *Client) GetEligibleStaff(ctx context.Context, serviceID int64) ([]Staff, error) {
	url := fmt.Sprintf("%s/internal/services/%d/staff", c.baseURL, serviceID)

	var staff []Staff
	if err := c.getJSON(ctx, url, &staff, ErrServiceNotFound); err != nil {
		return nil, err
	}

	// Неактивные сотрудники не участвуют в бронировании
	active := make([]Staff, 0, len(staff))
	for _, s := range staff {
		if s.Active {
			active = append(active, s)
		}
	}

	return active, nil
}

// GetStaffOverride получает переопределение цены/длительности услуги для сотрудника
// Возвращает nil, nil если переопределения нет
func (c *Client) GetStaffOverride(ctx context.Context, staffID, serviceID int64) (*StaffOverride, error) {
	url := fmt.Sprintf("%s/internal/staff/%d/services/%d/override", c.baseURL, staffID, serviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		// Переопределения нет — это не ошибка
		return nil, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var override StaffOverride
	if err := json.NewDecoder(resp.Body).Decode(&override); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &override, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dest interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid identifier format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
