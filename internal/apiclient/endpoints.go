package apiclient

import (
	"fmt"
	"strings"
)

const apiPrefix = "/api/v1"

// AuthEndpoints - адреса сервиса аутентификации
type AuthEndpoints struct {
	Login    string
	Register string
	Me       string
}

// Endpoints - таблица адресов внешнего API, построенная от базового URL
type Endpoints struct {
	BaseURL   string
	Reports   string
	Incidents string
	Resources string
	Analytics string
	Auth      AuthEndpoints
}

// NewEndpoints строит таблицу адресов; завершающие слэши базового URL отбрасываются
func NewEndpoints(baseURL string) Endpoints {
	base := strings.TrimRight(baseURL, "/")
	api := base + apiPrefix
	return Endpoints{
		BaseURL:   base,
		Reports:   api + "/reports/",
		Incidents: api + "/incidents/",
		Resources: api + "/resources/",
		Analytics: api + "/analytics",
		Auth: AuthEndpoints{
			Login:    api + "/auth/login",
			Register: api + "/auth/register",
			Me:       api + "/auth/me",
		},
	}
}

// Report возвращает адрес одного отчета
func (e Endpoints) Report(id int64) string {
	return fmt.Sprintf("%s%d", e.Reports, id)
}
