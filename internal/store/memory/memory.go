// Package memory is an in-memory Store used by tests and local runs.
// A single mutex gives every mutation the same atomicity the mysql
// implementation gets from transactions and unique keys.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gosimple/slug"

	"github.com/Timons172/Orders-backend-app/internal/models"
	"github.com/Timons172/Orders-backend-app/internal/store"
)

type productKey struct {
	categoryID int64
	name       string
}

type listingKey struct {
	productID int64
	shopID    int64
}

// Store holds everything in maps. Reads hand out copies so callers
// cannot mutate shared state.
type Store struct {
	mu sync.RWMutex

	users     map[int64]*models.User
	usernames map[string]int64

	shops         map[int64]*models.Shop
	shopNames     map[string]int64
	categories    map[int64]*models.Category
	categoryNames map[string]int64
	categoryShops map[int64]map[int64]struct{}
	products      map[int64]*models.Product
	productKeys   map[productKey]int64
	listings      map[int64]*models.ProductListing
	listingKeys   map[listingKey]int64
	listingParams map[int64][]models.ListingParameter

	contacts map[int64]*models.Contact
	orders   map[int64]*models.Order
	lines    map[int64]*models.OrderLine

	nextUser, nextShop, nextCategory, nextProduct int64
	nextListing, nextContact, nextOrder, nextLine int64
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:         make(map[int64]*models.User),
		usernames:     make(map[string]int64),
		shops:         make(map[int64]*models.Shop),
		shopNames:     make(map[string]int64),
		categories:    make(map[int64]*models.Category),
		categoryNames: make(map[string]int64),
		categoryShops: make(map[int64]map[int64]struct{}),
		products:      make(map[int64]*models.Product),
		productKeys:   make(map[productKey]int64),
		listings:      make(map[int64]*models.ProductListing),
		listingKeys:   make(map[listingKey]int64),
		listingParams: make(map[int64][]models.ListingParameter),
		contacts:      make(map[int64]*models.Contact),
		orders:        make(map[int64]*models.Order),
		lines:         make(map[int64]*models.OrderLine),
	}
}

var _ store.Store = (*Store)(nil)

// --- Users ---

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernames[u.Username]; taken {
		return store.ErrDuplicate
	}

	s.nextUser++
	u.ID = s.nextUser
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	cp := *u
	s.users[u.ID] = &cp
	s.usernames[u.Username] = u.ID
	return nil
}

func (s *Store) UserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernames[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

func (s *Store) UserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// --- Catalog ---

func (s *Store) ImportCatalog(_ context.Context, snap *models.CatalogImport) (*models.ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shopID := s.ensureShop(snap.ShopName, snap.ShopURL)
	res := &models.ImportResult{ShopID: shopID}

	for _, name := range snap.Categories {
		catID := s.ensureCategory(name)
		s.attachCategory(catID, shopID)
		res.Categories++
	}

	for _, g := range snap.Goods {
		catID := s.ensureCategory(g.Category)
		s.attachCategory(catID, shopID)

		prodID, created := s.ensureProduct(catID, g.Name, g.Image)
		if created {
			res.Products++
		}
		if g.Image != "" {
			res.ImageProducts = append(res.ImageProducts, prodID)
		}

		key := listingKey{productID: prodID, shopID: shopID}
		lid, ok := s.listingKeys[key]
		if !ok {
			s.nextListing++
			lid = s.nextListing
			s.listingKeys[key] = lid
		}
		ext := g.ExternalID
		s.listings[lid] = &models.ProductListing{
			ID:         lid,
			ProductID:  prodID,
			ShopID:     shopID,
			ExternalID: &ext,
			Name:       g.Name,
			Quantity:   g.Quantity,
			Price:      g.Price,
			PriceRRC:   g.PriceRRC,
		}
		s.listingParams[lid] = append([]models.ListingParameter(nil), g.Parameters...)
		res.Listings++
	}

	return res, nil
}

func (s *Store) ensureShop(name, url string) int64 {
	id, ok := s.shopNames[name]
	if !ok {
		s.nextShop++
		id = s.nextShop
		s.shops[id] = &models.Shop{ID: id, Name: name}
		s.shopNames[name] = id
	}
	if url != "" {
		u := url
		s.shops[id].URL = &u
	}
	return id
}

func (s *Store) ensureCategory(name string) int64 {
	id, ok := s.categoryNames[name]
	if !ok {
		s.nextCategory++
		id = s.nextCategory
		s.categories[id] = &models.Category{ID: id, Name: name, Slug: slug.Make(name)}
		s.categoryNames[name] = id
	}
	return id
}

func (s *Store) attachCategory(categoryID, shopID int64) {
	if s.categoryShops[categoryID] == nil {
		s.categoryShops[categoryID] = make(map[int64]struct{})
	}
	s.categoryShops[categoryID][shopID] = struct{}{}
}

func (s *Store) ensureProduct(categoryID int64, name, image string) (int64, bool) {
	key := productKey{categoryID: categoryID, name: name}
	if id, ok := s.productKeys[key]; ok {
		if image != "" {
			img := image
			s.products[id].Image = &img
		}
		return id, false
	}

	s.nextProduct++
	p := &models.Product{
		ID:         s.nextProduct,
		CategoryID: categoryID,
		Name:       name,
		Slug:       slug.Make(name),
	}
	if image != "" {
		img := image
		p.Image = &img
	}
	s.products[p.ID] = p
	s.productKeys[key] = p.ID
	return p.ID, true
}

func (s *Store) Shops(_ context.Context) ([]models.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Shop, 0, len(s.shops))
	for _, sh := range s.shops {
		out = append(out, *sh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) Products(_ context.Context, categoryID int64) ([]models.ProductView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ProductView, 0)
	for _, p := range s.products {
		if categoryID != 0 && p.CategoryID != categoryID {
			continue
		}
		out = append(out, s.productView(p.ID))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// productView inlines the category. Callers hold the lock.
func (s *Store) productView(productID int64) models.ProductView {
	p := s.products[productID]
	view := models.ProductView{ID: p.ID, Name: p.Name, Slug: p.Slug}
	if p.Image != nil {
		img := *p.Image
		view.Image = &img
	}
	if c, ok := s.categories[p.CategoryID]; ok {
		view.Category = *c
	}
	return view
}

func (s *Store) Listing(_ context.Context, productID, shopID int64) (*models.ProductListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lid, ok := s.listingKeys[listingKey{productID: productID, shopID: shopID}]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *s.listings[lid]
	return &cp, nil
}

func (s *Store) ListingsByShop(_ context.Context, shopID int64) ([]models.ProductListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ProductListing, 0)
	for _, l := range s.listings {
		if l.ShopID == shopID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SearchListings(_ context.Context, f store.ListingFilter) ([]models.ListingView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(f.Search)
	out := make([]models.ListingView, 0)
	for _, l := range s.listings {
		p := s.products[l.ProductID]
		if f.ShopID != 0 && l.ShopID != f.ShopID {
			continue
		}
		if f.CategoryID != 0 && p.CategoryID != f.CategoryID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(l.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		out = append(out, models.ListingView{
			ID:         l.ID,
			Product:    s.productView(l.ProductID),
			Shop:       *s.shops[l.ShopID],
			Name:       l.Name,
			Quantity:   l.Quantity,
			Price:      models.NewMoney(l.Price),
			PriceRRC:   models.NewMoney(l.PriceRRC),
			Parameters: append([]models.ListingParameter{}, s.listingParams[l.ID]...),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Contacts ---

func (s *Store) CreateContact(_ context.Context, c *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextContact++
	c.ID = s.nextContact
	cp := *c
	s.contacts[c.ID] = &cp
	return nil
}

func (s *Store) ContactsByUser(_ context.Context, userID int64) ([]models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Contact, 0)
	for _, c := range s.contacts {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ContactForUser(_ context.Context, userID, contactID int64) (*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[contactID]
	if !ok || c.UserID != userID {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *Store) UpdateContact(_ context.Context, c *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.contacts[c.ID]
	if !ok || cur.UserID != c.UserID {
		return store.ErrNotFound
	}
	cur.Type = c.Type
	cur.Value = c.Value
	return nil
}

func (s *Store) DeleteContact(_ context.Context, userID, contactID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contacts[contactID]
	if !ok || c.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.contacts, contactID)
	return nil
}

// --- Orders ---

func (s *Store) GetOrCreateCart(_ context.Context, userID int64) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o := s.cartOf(userID); o != nil {
		cp := *o
		return &cp, nil
	}

	s.nextOrder++
	o := &models.Order{
		ID:        s.nextOrder,
		UserID:    userID,
		Status:    models.StatusNew,
		CreatedAt: time.Now(),
	}
	s.orders[o.ID] = o
	cp := *o
	return &cp, nil
}

// cartOf finds the user's "new" order. Callers hold the lock.
func (s *Store) cartOf(userID int64) *models.Order {
	for _, o := range s.orders {
		if o.UserID == userID && o.Status == models.StatusNew {
			return o
		}
	}
	return nil
}

func (s *Store) AddCartLine(_ context.Context, orderID, productID, shopID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[orderID]; !ok {
		return store.ErrNotFound
	}

	for _, l := range s.lines {
		if l.OrderID == orderID && l.ProductID == productID && l.ShopID == shopID {
			l.Quantity += quantity
			return nil
		}
	}

	s.nextLine++
	s.lines[s.nextLine] = &models.OrderLine{
		ID:        s.nextLine,
		OrderID:   orderID,
		ProductID: productID,
		ShopID:    shopID,
		Quantity:  quantity,
	}
	return nil
}

func (s *Store) DeleteCartLine(_ context.Context, userID, lineID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lines[lineID]
	if !ok {
		return store.ErrNotFound
	}
	o := s.orders[l.OrderID]
	if o == nil || o.UserID != userID || o.Status != models.StatusNew {
		return store.ErrNotFound
	}
	delete(s.lines, lineID)
	return nil
}

func (s *Store) ConfirmCart(_ context.Context, userID, contactID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartOf(userID)
	if cart == nil {
		return 0, store.ErrNoCart
	}

	hasLines := false
	for _, l := range s.lines {
		if l.OrderID == cart.ID {
			hasLines = true
			break
		}
	}
	if !hasLines {
		return 0, store.ErrEmptyCart
	}

	c, ok := s.contacts[contactID]
	if !ok || c.UserID != userID {
		return 0, store.ErrInvalidContact
	}

	cart.Status = models.StatusConfirmed
	cid := contactID
	cart.ContactID = &cid
	return cart.ID, nil
}

func (s *Store) OrdersByUser(_ context.Context, userID int64) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0)
	for _, o := range s.orders {
		if o.UserID == userID && o.Status != models.StatusNew {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) OrderForUser(_ context.Context, userID, orderID int64) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID]
	if !ok || o.UserID != userID || o.Status == models.StatusNew {
		return nil, store.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *Store) OrderLineViews(_ context.Context, orderID int64) ([]models.OrderLineView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]*models.OrderLine, 0)
	for _, l := range s.lines {
		if l.OrderID == orderID {
			lines = append(lines, l)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })

	out := make([]models.OrderLineView, 0, len(lines))
	for _, l := range lines {
		if _, ok := s.products[l.ProductID]; !ok {
			return nil, store.ErrIntegrity
		}
		sh, ok := s.shops[l.ShopID]
		if !ok {
			return nil, store.ErrIntegrity
		}
		out = append(out, models.OrderLineView{
			ID:       l.ID,
			Product:  s.productView(l.ProductID),
			Shop:     *sh,
			Quantity: l.Quantity,
		})
	}
	return out, nil
}
