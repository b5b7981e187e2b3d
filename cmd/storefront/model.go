package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeMC777/ordenes-storefront/internal/order"
	"github.com/MikeMC777/ordenes-storefront/internal/product"
	"github.com/MikeMC777/ordenes-storefront/internal/session"
)

const callTimeout = 15 * time.Second

type screen int

const (
	screenProducts screen = iota
	screenDetail
	screenOrders
)

type deps struct {
	catalog   *product.Catalog
	submitter *order.Submitter
	coord     *order.Coordinator
	book      *order.Book
	orders    order.Lister
	user      *session.User
}

type model struct {
	d      *deps
	screen screen
	status string

	categories []string
	catIdx     int // 0 is "all"
	products   []product.Listed
	selProduct int
	loading    bool

	detail      *product.Listed
	qty         *product.Quantity
	address     string
	editAddress bool
	submitting  bool

	selOrder   int
	confirming int64
}

func newModel(d *deps) model {
	return model{d: d, status: "Loading products...", loading: true}
}

type productsLoaded struct {
	items []product.Listed
	err   error
}

type categoriesLoaded struct {
	cats []string
	err  error
}

type detailLoaded struct {
	item *product.Listed
	err  error
}

type orderPlaced struct {
	o   *order.Order
	err error
}

type ordersLoaded struct{ err error }

type cancelDone struct {
	id  int64
	err error
}

func (m model) category() string {
	if m.catIdx <= 0 || m.catIdx > len(m.categories) {
		return "all"
	}
	return m.categories[m.catIdx-1]
}

func loadProductsCmd(d *deps, category string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		items, err := d.catalog.Available(ctx, product.Filter{Category: category})
		return productsLoaded{items: items, err: err}
	}
}

func loadCategoriesCmd(d *deps) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		cats, err := d.catalog.Categories(ctx)
		return categoriesLoaded{cats: cats, err: err}
	}
}

func loadDetailCmd(d *deps, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		item, err := d.catalog.Detail(ctx, id)
		return detailLoaded{item: item, err: err}
	}
}

func placeOrderCmd(d *deps, in order.SubmitInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		o, err := d.submitter.Submit(ctx, in)
		return orderPlaced{o: o, err: err}
	}
}

func loadOrdersCmd(d *deps) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		return ordersLoaded{err: d.book.Load(ctx, d.orders, d.user.ID)}
	}
}

// cancelCmd runs only after the user answered yes.
func cancelCmd(d *deps, id int64, current order.Status) tea.Cmd {
	return func() tea.Msg {
		_, err := d.coord.Cancel(context.Background(), id, current, order.Answer(true))
		return cancelDone{id: id, err: err}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(loadCategoriesCmd(m.d), loadProductsCmd(m.d, "all"))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case categoriesLoaded:
		if msg.err == nil {
			m.categories = msg.cats
		}
	case productsLoaded:
		m.loading = false
		if msg.err != nil {
			m.status = "Failed to load products."
			return m, nil
		}
		m.products = msg.items
		if m.selProduct >= len(m.products) {
			m.selProduct = 0
		}
		m.status = fmt.Sprintf("%d products available", len(m.products))
	case detailLoaded:
		if msg.err != nil {
			m.status = "Failed to load product."
			return m, nil
		}
		m.detail = msg.item
		m.qty = product.NewQuantity(msg.item.Stock)
		m.screen = screenDetail
		m.status = ""
	case orderPlaced:
		m.submitting = false
		if msg.err != nil {
			m.status = order.UserMessage(msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Order #%d placed.", msg.o.ID)
		m.address = ""
		m.screen = screenOrders
		return m, loadOrdersCmd(m.d)
	case ordersLoaded:
		if msg.err != nil {
			m.status = "Failed to load orders."
			return m, nil
		}
		if m.selOrder >= len(m.d.book.Orders()) {
			m.selOrder = 0
		}
	case cancelDone:
		switch {
		case msg.err == nil:
			m.status = fmt.Sprintf("Order #%d cancelled.", msg.id)
		case order.IsSilent(msg.err):
		default:
			m.status = order.UserMessage(msg.err)
		}
	}
	return m, nil
}

func (m model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.screen == screenDetail && m.editAddress {
		return m.editAddressKey(k), nil
	}
	if m.confirming != 0 {
		return m.confirmKey(k)
	}

	switch k.String() {
	case "q":
		return m, tea.Quit
	case "o":
		m.screen = screenOrders
		m.status = ""
		return m, loadOrdersCmd(m.d)
	case "p":
		m.screen = screenProducts
		m.status = ""
		m.loading = true
		return m, loadProductsCmd(m.d, m.category())
	}

	switch m.screen {
	case screenProducts:
		return m.productsKey(k)
	case screenDetail:
		return m.detailKey(k)
	default:
		return m.ordersKey(k)
	}
}

func (m model) productsKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "up", "k":
		if m.selProduct > 0 {
			m.selProduct--
		}
	case "down", "j":
		if m.selProduct < len(m.products)-1 {
			m.selProduct++
		}
	case "left", "right":
		n := len(m.categories) + 1
		if k.String() == "right" {
			m.catIdx = (m.catIdx + 1) % n
		} else {
			m.catIdx = (m.catIdx + n - 1) % n
		}
		m.selProduct = 0
		m.loading = true
		return m, loadProductsCmd(m.d, m.category())
	case "r":
		m.loading = true
		return m, loadProductsCmd(m.d, m.category())
	case "enter":
		if len(m.products) == 0 {
			return m, nil
		}
		return m, loadDetailCmd(m.d, m.products[m.selProduct].Product.ID)
	}
	return m, nil
}

func (m model) detailKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.screen = screenProducts
		m.status = ""
	case "+", "=", "right":
		m.qty.Inc()
	case "-", "left":
		m.qty.Dec()
	case "a":
		m.editAddress = true
	case "enter":
		if m.submitting {
			return m, nil
		}
		in := order.SubmitInput{
			UserID:          m.d.user.ID,
			ProductID:       m.detail.Product.ID,
			Quantity:        m.qty.Value(),
			DeliveryAddress: m.address,
			Stock:           m.qty.Stock(),
		}
		if err := order.Validate(in); err != nil {
			m.status = order.UserMessage(err)
			return m, nil
		}
		m.submitting = true
		m.status = "Placing order..."
		return m, placeOrderCmd(m.d, in)
	}
	return m, nil
}

func (m model) editAddressKey(k tea.KeyMsg) model {
	switch k.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.editAddress = false
	case tea.KeyBackspace:
		if r := []rune(m.address); len(r) > 0 {
			m.address = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.address += " "
	case tea.KeyRunes:
		m.address += string(k.Runes)
	}
	return m
}

func (m model) ordersKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	orders := m.d.book.Orders()
	switch k.String() {
	case "up", "k":
		if m.selOrder > 0 {
			m.selOrder--
		}
	case "down", "j":
		if m.selOrder < len(orders)-1 {
			m.selOrder++
		}
	case "r":
		return m, loadOrdersCmd(m.d)
	case "c":
		// The book may have been replaced by a reload still in flight.
		if m.selOrder < 0 || m.selOrder >= len(orders) {
			return m, nil
		}
		o := orders[m.selOrder]
		if !order.IsCancellable(o.Status) || m.d.coord.InFlight(o.ID) {
			return m, nil
		}
		m.confirming = o.ID
		m.status = fmt.Sprintf("Cancel order #%d? (y/n)", o.ID)
	}
	return m, nil
}

func (m model) confirmKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirming
	switch k.String() {
	case "y", "Y":
		m.confirming = 0
		o, ok := m.d.book.Get(id)
		if !ok {
			m.status = ""
			return m, nil
		}
		m.status = fmt.Sprintf("Cancelling order #%d...", id)
		return m, cancelCmd(m.d, id, o.Status)
	case "n", "N", "esc":
		m.confirming = 0
		m.status = ""
	}
	return m, nil
}

func (m model) View() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "storefront  (%s)\n\n", m.d.user.Username)

	switch m.screen {
	case screenProducts:
		m.viewProducts(b)
	case screenDetail:
		m.viewDetail(b)
	default:
		m.viewOrders(b)
	}

	if m.status != "" {
		fmt.Fprintf(b, "\n%s\n", m.status)
	}
	return b.String()
}

func (m model) viewProducts(b *strings.Builder) {
	fmt.Fprintf(b, "Category: %s   (left/right to change)\n\n", m.category())
	if m.loading {
		fmt.Fprintln(b, "Loading...")
	}
	for i, it := range m.products {
		marker := " "
		if i == m.selProduct {
			marker = ">"
		}
		fmt.Fprintf(b, " %s %-28s %10s  stock: %s\n", marker, it.Product.Name, "$"+it.Product.Price.StringFixed(2), it.Stock)
	}
	fmt.Fprintln(b, "\nup/down select, enter details, o orders, r reload, q quit")
}

func (m model) viewDetail(b *strings.Builder) {
	p := m.detail.Product
	fmt.Fprintf(b, "%s\n%s\n\nPrice: $%s   Category: %s\n", p.Name, p.Description, p.Price.StringFixed(2), p.Category)
	if n, bounded := product.MaxQuantity(m.qty.Stock()); bounded {
		fmt.Fprintf(b, "In stock: %d\n", n)
	} else {
		fmt.Fprintln(b, "In stock: unknown")
	}
	fmt.Fprintf(b, "\nQuantity: [-] %d [+]\n", m.qty.Value())
	cursor := ""
	if m.editAddress {
		cursor = "_"
	}
	fmt.Fprintf(b, "Delivery address: %s%s\n", m.address, cursor)
	if !m.qty.CanSubmit() {
		fmt.Fprintln(b, "Out of stock")
	}
	if m.editAddress {
		fmt.Fprintln(b, "\ntype the address, enter when done")
	} else {
		fmt.Fprintln(b, "\n+/- quantity, a edit address, enter place order, esc back")
	}
}

func (m model) viewOrders(b *strings.Builder) {
	orders := m.d.book.Orders()
	if len(orders) == 0 {
		fmt.Fprintln(b, "No orders yet.")
	}
	for i, o := range orders {
		marker := " "
		if i == m.selOrder {
			marker = ">"
		}
		v := order.NewView(o, m.d.coord.InFlight(o.ID))
		state := string(v.Status)
		if v.Cancelling {
			state = "Cancelling..."
		}
		fmt.Fprintf(b, " %s #%-6d %-10s %-18s %10s  %s\n", marker, v.ID, v.OrderDate.Date(), state,
			"$"+v.TotalPrice.StringFixed(2), v.DeliveryAddress)
	}
	fmt.Fprintln(b, "\nup/down select, c cancel, r reload, p products, q quit")
}
