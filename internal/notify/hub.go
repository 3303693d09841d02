package notify

import (
	"context"
	"log"
	"sync"

	"canteen-service/internal/domain"
	"canteen-service/internal/repository"

	"golang.org/x/sync/singleflight"
)

// UnsubscribeFunc tears down a subscription. It is safe to call more
// than once; teardown happens exactly once.
type UnsubscribeFunc func()

type listSub struct {
	ch chan []domain.Order
}

type orderSub struct {
	ch chan domain.Order
}

// Hub fans out order changes to three kinds of subscribers: the staff
// queue (all active orders, oldest first), per-user order lists
// (newest first), and single-order watchers. List subscribers get a
// fresh snapshot re-fetched from the store on every change; bursts of
// changes coalesce, and the final delivery always reflects the latest
// persisted state.
type Hub struct {
	repo repository.OrderRepository
	sf   singleflight.Group

	mu     sync.Mutex
	nextID int
	active map[int]*listSub
	users  map[string]map[int]*listSub
	orders map[string]map[int]*orderSub

	// Generation counters, bumped per change before any re-fetch. A
	// coalesced fetch carries the generation it started at, so a
	// change that joined an older in-flight fetch can tell its data
	// predates the change and fetch again.
	activeGen uint64
	userGen   map[string]uint64
}

func NewHub(repo repository.OrderRepository) *Hub {
	return &Hub{
		repo:    repo,
		active:  make(map[int]*listSub),
		users:   make(map[string]map[int]*listSub),
		orders:  make(map[string]map[int]*orderSub),
		userGen: make(map[string]uint64),
	}
}

// listSnapshot stamps a fetched list with the generation observed when
// the store query began.
type listSnapshot struct {
	orders []domain.Order
	gen    uint64
}

// SubscribeActive delivers the full active-order queue whenever any
// order changes.
func (h *Hub) SubscribeActive() (<-chan []domain.Order, UnsubscribeFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	sub := &listSub{ch: make(chan []domain.Order, 1)}
	h.active[id] = sub

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.active, id)
			h.mu.Unlock()
			close(sub.ch)
		})
	}
}

// SubscribeUser delivers the user's order list whenever one of their
// orders changes.
func (h *Hub) SubscribeUser(userID string) (<-chan []domain.Order, UnsubscribeFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	sub := &listSub{ch: make(chan []domain.Order, 1)}
	if h.users[userID] == nil {
		h.users[userID] = make(map[int]*listSub)
	}
	h.users[userID][id] = sub

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.users[userID], id)
			if len(h.users[userID]) == 0 {
				delete(h.users, userID)
			}
			h.mu.Unlock()
			close(sub.ch)
		})
	}
}

// SubscribeOrder delivers the updated record directly when that one
// order changes, with no list re-fetch.
func (h *Hub) SubscribeOrder(orderID string) (<-chan domain.Order, UnsubscribeFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	sub := &orderSub{ch: make(chan domain.Order, 1)}
	if h.orders[orderID] == nil {
		h.orders[orderID] = make(map[int]*orderSub)
	}
	h.orders[orderID][id] = sub

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.orders[orderID], id)
			if len(h.orders[orderID]) == 0 {
				delete(h.orders, orderID)
			}
			h.mu.Unlock()
			close(sub.ch)
		})
	}
}

// OrderChanged is called after every confirmed store write. Delivery
// is asynchronous so the writing flow never blocks on subscribers.
func (h *Hub) OrderChanged(order domain.Order) {
	go h.notifyActive()
	go h.notifyUser(order.UserID)
	go h.notifyOrder(order)
}

func (h *Hub) notifyActive() {
	h.mu.Lock()
	h.activeGen++
	minGen := h.activeGen
	n := len(h.active)
	h.mu.Unlock()
	if n == 0 {
		return
	}

	orders, err := h.fetchActive(minGen)
	if err != nil {
		log.Printf("notify: active re-fetch failed: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.active {
		deliverList(sub, orders)
	}
}

func (h *Hub) notifyUser(userID string) {
	h.mu.Lock()
	h.userGen[userID]++
	minGen := h.userGen[userID]
	n := len(h.users[userID])
	h.mu.Unlock()
	if n == 0 {
		return
	}

	orders, err := h.fetchUser(userID, minGen)
	if err != nil {
		log.Printf("notify: user re-fetch failed: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.users[userID] {
		deliverList(sub, orders)
	}
}

func (h *Hub) notifyOrder(order domain.Order) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.orders[order.ID] {
		select {
		case sub.ch <- order:
		default:
			// Replace a stale undelivered record with the newer one.
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- order:
			default:
			}
		}
	}
}

// fetchActive coalesces concurrent re-fetches triggered by a burst of
// changes into fewer store queries. A fetch only satisfies a change
// whose generation it started at or after; joining an older in-flight
// fetch would return data read before this change committed, so the
// caller fetches again. Any fresh fetch observes the current
// generation, so at most one retry occurs per joined call.
func (h *Hub) fetchActive(minGen uint64) ([]domain.Order, error) {
	for {
		v, err, _ := h.sf.Do("active", func() (interface{}, error) {
			h.mu.Lock()
			gen := h.activeGen
			h.mu.Unlock()
			orders, err := h.repo.FindActive(context.Background())
			if err != nil {
				return nil, err
			}
			return listSnapshot{orders: orders, gen: gen}, nil
		})
		if err != nil {
			return nil, err
		}
		if snap := v.(listSnapshot); snap.gen >= minGen {
			return snap.orders, nil
		}
	}
}

func (h *Hub) fetchUser(userID string, minGen uint64) ([]domain.Order, error) {
	for {
		v, err, _ := h.sf.Do("user:"+userID, func() (interface{}, error) {
			h.mu.Lock()
			gen := h.userGen[userID]
			h.mu.Unlock()
			orders, err := h.repo.FindByUserID(context.Background(), userID)
			if err != nil {
				return nil, err
			}
			return listSnapshot{orders: orders, gen: gen}, nil
		})
		if err != nil {
			return nil, err
		}
		if snap := v.(listSnapshot); snap.gen >= minGen {
			return snap.orders, nil
		}
	}
}

// deliverList is a latest-wins send: if the subscriber has not drained
// the previous snapshot it is replaced, never queued behind.
func deliverList(sub *listSub, orders []domain.Order) {
	select {
	case sub.ch <- orders:
	default:
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- orders:
		default:
		}
	}
}
