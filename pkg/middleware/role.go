package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/internal/domain"
	"github.com/vfg2006/adsflow-api/pkg/apiErrors"
)

// RoleMiddleware cria um middleware que restringe o acesso com base nos roles
// allowedRoles é a lista de roles que têm permissão para acessar a rota
func RoleMiddleware(allowedRoles []int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(ContextKeyClient).(*domain.Claims)

			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Cliente não autenticado", nil)
				return
			}

			isAllowed := false
			for _, role := range allowedRoles {
				if claims.ClientRole == role {
					isAllowed = true
					break
				}
			}

			if !isAllowed {
				logrus.Warningf("Acesso negado para cliente ID=%s, Role=%d", claims.ClientID, claims.ClientRole)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OperatorOnly permite acesso apenas ao operador da agência
func OperatorOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{domain.RoleOperator})
}

// AllRoles permite acesso ao operador e aos clientes
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{domain.RoleOperator, domain.RoleTenant})
}
