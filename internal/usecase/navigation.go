package usecase

import (
	"context"
	"sync"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
)

// NavigationController выбирает активный подграф экранов по состоянию
// Session Gate и перепроверяет его после каждого перехода. Подграфы
// взаимоисключающие: смена варианта заменяет весь граф, а не кладёт
// экран поверх, и отбрасывает локальное состояние неактивной ветки.
type NavigationController struct {
	mu      sync.Mutex
	session SessionUC
	logger  logger.Logger
	flow    domain.Flow
	route   domain.Route
	unsub   func()
	closed  bool
}

// NewNavigationController разрешает начальное состояние сессии и
// подписывается на его смены. Подписка снимается в Close: висящий
// обработчик с неограниченным временем жизни — утечка.
func NewNavigationController(ctx context.Context, session SessionUC, logger logger.Logger) *NavigationController {
	n := &NavigationController{
		session: session,
		logger:  logger,
	}

	state := session.Resolve(ctx)
	n.flow = domain.FlowFor(state)
	n.route = n.flow.Routes()[0]

	n.unsub = session.Subscribe(func(state domain.AuthState) {
		n.applyFlow(domain.FlowFor(state))
	})

	return n
}

// Flow возвращает активный подграф.
func (n *NavigationController) Flow() domain.Flow {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.flow
}

// Route возвращает текущий экран.
func (n *NavigationController) Route() domain.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.route
}

// Navigate переходит на экран активного подграфа. После каждого
// перехода наличие токена перечитывается: внешняя инвалидация токена
// закрывает авторизованный подграф на ближайшей же навигации.
// Если производный флаг не изменился, граф не перестраивается.
func (n *NavigationController) Navigate(ctx context.Context, route domain.Route) error {
	const op = "NavigationController.Navigate"

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return e.Wrap(op, e.ErrRouteNotReachable)
	}
	if !n.flow.Contains(route) {
		n.mu.Unlock()
		return e.Wrap(string(route), e.ErrRouteNotReachable)
	}
	n.route = route
	n.mu.Unlock()

	state := n.session.Resolve(ctx)
	n.applyFlow(domain.FlowFor(state))

	return nil
}

// Close снимает подписку на события сессии.
func (n *NavigationController) Close() {
	n.mu.Lock()
	closed := n.closed
	n.closed = true
	unsub := n.unsub
	n.mu.Unlock()

	if !closed && unsub != nil {
		unsub()
	}
}

// applyFlow переключает подграф только при фактической смене варианта,
// чтобы подтверждение прежнего состояния не вызывало перемонтирование.
func (n *NavigationController) applyFlow(flow domain.Flow) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed || n.flow == flow {
		return
	}

	n.flow = flow
	n.route = flow.Routes()[0]
	n.logger.Infof("navigation flow switched to %s", flow)
}
