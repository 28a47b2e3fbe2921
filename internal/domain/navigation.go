package domain

// Flow — активный подграф экранов. Вариантов ровно два, они
// взаимоисключающие: переключение отбрасывает локальное состояние
// неактивного подграфа (состояние логина после входа не сохраняется).
type Flow int

const (
	FlowAuth Flow = iota // логин и регистрация
	FlowShop             // каталог, корзина, proof of delivery
)

func (f Flow) String() string {
	switch f {
	case FlowAuth:
		return "auth"
	case FlowShop:
		return "shop"
	default:
		return "invalid"
	}
}

// Route — экран, адресуемый контроллером навигации.
type Route string

const (
	RouteLogin    Route = "login"
	RouteRegister Route = "register"
	RouteHome     Route = "home"
	RouteCart     Route = "cart"
	RouteProof    Route = "proof_of_delivery"
)

// Routes возвращает экраны, достижимые в данном подграфе.
func (f Flow) Routes() []Route {
	if f == FlowShop {
		return []Route{RouteHome, RouteCart, RouteProof}
	}

	return []Route{RouteLogin, RouteRegister}
}

// Contains сообщает, достижим ли экран в данном подграфе.
func (f Flow) Contains(route Route) bool {
	for _, r := range f.Routes() {
		if r == route {
			return true
		}
	}

	return false
}

// FlowFor выбирает подграф по состоянию Session Gate.
// Unknown трактуется как неавторизованный: к моменту выбора подграфа
// первичная проверка токена уже обязана была завершиться (fail closed).
func FlowFor(state AuthState) Flow {
	if state.Authenticated() {
		return FlowShop
	}

	return FlowAuth
}
