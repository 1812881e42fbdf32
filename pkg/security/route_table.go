package security

import (
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/roles"
)

// Screen is a navigable client route.
type Screen string

const (
	ScreenRoot            Screen = "/"
	ScreenLogin           Screen = "/login"
	ScreenDashboard       Screen = "/dashboard"
	ScreenCatalog         Screen = "/catalog"
	ScreenVehicles        Screen = "/vehicles"
	ScreenUsers           Screen = "/users"
	ScreenSubmissions     Screen = "/submissions"
	ScreenRequests        Screen = "/requests"
	ScreenTechnicianHome  Screen = "/technician"
	ScreenInventoryCheck  Screen = "/inventory-check"
	ScreenMaterialRequest Screen = "/request-material"
)

// screenRoles is the single source of truth for which role reaches which
// screen. Evaluated on every request, never cached, since the session can
// change between requests.
var screenRoles = map[Screen]roles.Role{
	ScreenDashboard:       roles.Manager,
	ScreenCatalog:         roles.Manager,
	ScreenVehicles:        roles.Manager,
	ScreenUsers:           roles.Manager,
	ScreenSubmissions:     roles.Manager,
	ScreenRequests:        roles.Manager,
	ScreenTechnicianHome:  roles.Technician,
	ScreenInventoryCheck:  roles.Technician,
	ScreenMaterialRequest: roles.Technician,
}

type NavigationAction string

const (
	ActionRender   NavigationAction = "render"
	ActionRedirect NavigationAction = "redirect"
)

type NavigationDecision struct {
	Action NavigationAction `json:"action"`
	Target Screen           `json:"target,omitempty"`
}

// Resolve applies the route table to one navigation attempt. An unknown
// screen and a role mismatch both redirect to login rather than erroring.
func Resolve(user *models.User, screen Screen) NavigationDecision {
	if screen == ScreenLogin {
		return NavigationDecision{Action: ActionRender}
	}

	if screen == ScreenRoot {
		if user == nil {
			return NavigationDecision{Action: ActionRedirect, Target: ScreenLogin}
		}
		return NavigationDecision{Action: ActionRedirect, Target: HomeScreen(roles.Role(user.Role))}
	}

	required, known := screenRoles[screen]
	if !known {
		return NavigationDecision{Action: ActionRedirect, Target: ScreenLogin}
	}

	if user == nil || roles.Role(user.Role) != required {
		return NavigationDecision{Action: ActionRedirect, Target: ScreenLogin}
	}

	return NavigationDecision{Action: ActionRender}
}

func HomeScreen(role roles.Role) Screen {
	if role == roles.Manager {
		return ScreenDashboard
	}
	return ScreenTechnicianHome
}
