package httphandler

import (
	"time"

	"github.com/niksmo/bloomora/internal/core/domain"
)

type (
	Product struct {
		ID            string  `json:"id"`
		Name          string  `json:"name"`
		BotanicalName string  `json:"botanicalName"`
		Price         int64   `json:"price"`
		SalePrice     int64   `json:"salePrice,omitempty"`
		Description   string  `json:"description"`
		Category      string  `json:"category"`
		Difficulty    string  `json:"difficulty"`
		Light         string  `json:"light"`
		Water         string  `json:"water"`
		Image         string  `json:"image"`
		EcoScore      float64 `json:"ecoScore"`
		IsNew         bool    `json:"isNew,omitempty"`
		IsSoldOut     bool    `json:"isSoldOut,omitempty"`
		Reviews       int     `json:"reviews"`
		Rating        float64 `json:"rating"`
	}

	CatalogPage struct {
		Products   []Product `json:"products"`
		Categories []string  `json:"categories"`
		MaxPrice   int64     `json:"maxPrice"`
	}
)

type (
	CartLine struct {
		Product   Product `json:"product"`
		Quantity  int     `json:"quantity"`
		LineTotal int64   `json:"lineTotal"`
	}

	Cart struct {
		Lines []CartLine `json:"lines"`
		Total int64      `json:"total"`
		Count int        `json:"count"`
		Open  bool       `json:"open"`
	}

	AddItemRequest struct {
		ProductID string `json:"product_id"`
	}

	UpdateQuantityRequest struct {
		Delta int `json:"delta"`
	}
)

type (
	Identity struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Avatar   string `json:"avatar,omitempty"`
		IsGoogle bool   `json:"isGoogle,omitempty"`
	}

	Session struct {
		Authenticated bool      `json:"authenticated"`
		Identity      *Identity `json:"identity,omitempty"`
	}

	LoginRequest struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	Redirect struct {
		Redirect string `json:"redirect"`
	}
)

type (
	Shipping struct {
		Email      string `json:"email"`
		FirstName  string `json:"firstName"`
		LastName   string `json:"lastName"`
		Address    string `json:"address"`
		Apartment  string `json:"apartment,omitempty"`
		City       string `json:"city"`
		State      string `json:"state"`
		Zip        string `json:"zip"`
		Newsletter bool   `json:"newsletter"`
	}

	PlaceOrderRequest struct {
		Shipping Shipping `json:"shipping"`
		Payment  string   `json:"payment"`
	}

	Order struct {
		ID       string     `json:"id"`
		Lines    []CartLine `json:"lines"`
		Total    int64      `json:"total"`
		Payment  string     `json:"payment"`
		PlacedAt time.Time  `json:"placedAt"`
	}

	Checkout struct {
		State   string     `json:"state"`
		Prefill string     `json:"prefillEmail,omitempty"`
		Lines   []CartLine `json:"lines"`
		Total   int64      `json:"total"`
		Order   *Order     `json:"order,omitempty"`
		Error   string     `json:"error,omitempty"`
	}
)

type (
	CareTask struct {
		ID        string    `json:"id"`
		PlantName string    `json:"plantName"`
		Type      string    `json:"type"`
		Due       time.Time `json:"due"`
		Completed bool      `json:"completed"`
		Image     string    `json:"image"`
	}

	BlogPost struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
		ReadTime string `json:"readTime"`
		Image    string `json:"image"`
		Excerpt  string `json:"excerpt"`
		Date     string `json:"date"`
	}

	Home struct {
		NewArrivals []Product  `json:"newArrivals"`
		Posts       []BlogPost `json:"posts"`
		Promos      []string   `json:"promos"`
	}

	QuizOption struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}

	QuizQuestion struct {
		ID       int          `json:"id"`
		Question string       `json:"question"`
		Options  []QuizOption `json:"options"`
	}

	QuizAnswers struct {
		Answers map[int]string `json:"answers"`
	}

	QuizResult struct {
		Persona     string    `json:"persona"`
		Recommended []Product `json:"recommended"`
	}

	ProductSales struct {
		ProductID string `json:"productId"`
		Name      string `json:"name"`
		Quantity  int64  `json:"quantity"`
		Revenue   int64  `json:"revenue"`
	}
)

type ErrorBody struct {
	Error string `json:"error"`
}

func productFromDomain(p domain.Product) Product {
	return Product{
		ID:            p.ID,
		Name:          p.Name,
		BotanicalName: p.BotanicalName,
		Price:         p.Price,
		SalePrice:     p.SalePrice,
		Description:   p.Description,
		Category:      string(p.Category),
		Difficulty:    string(p.Difficulty),
		Light:         string(p.Light),
		Water:         string(p.Water),
		Image:         p.Image,
		EcoScore:      p.EcoScore,
		IsNew:         p.IsNew,
		IsSoldOut:     p.IsSoldOut,
		Reviews:       p.Reviews,
		Rating:        p.Rating,
	}
}

func productsFromDomain(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = productFromDomain(p)
	}
	return out
}

func linesFromDomain(ls []domain.CartLine) []CartLine {
	out := make([]CartLine, len(ls))
	for i, l := range ls {
		out[i] = CartLine{
			Product:   productFromDomain(l.Product),
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal(),
		}
	}
	return out
}

func identityFromDomain(v domain.Identity) *Identity {
	return &Identity{
		Name:     v.Name,
		Email:    v.Email,
		Avatar:   v.Avatar,
		IsGoogle: v.IsGoogle,
	}
}

func orderFromDomain(o domain.Order) *Order {
	return &Order{
		ID:       o.ID,
		Lines:    linesFromDomain(o.Lines),
		Total:    o.Total,
		Payment:  string(o.Payment),
		PlacedAt: o.PlacedAt,
	}
}

func (s Shipping) toDomain() domain.ShippingDetails {
	return domain.ShippingDetails{
		Email:      s.Email,
		FirstName:  s.FirstName,
		LastName:   s.LastName,
		Address:    s.Address,
		Apartment:  s.Apartment,
		City:       s.City,
		State:      s.State,
		Zip:        s.Zip,
		Newsletter: s.Newsletter,
	}
}

func taskFromDomain(t domain.CareTask) CareTask {
	return CareTask{
		ID:        t.ID,
		PlantName: t.PlantName,
		Type:      string(t.Type),
		Due:       t.Due,
		Completed: t.Completed,
		Image:     t.Image,
	}
}

func postsFromDomain(ps []domain.BlogPost) []BlogPost {
	out := make([]BlogPost, len(ps))
	for i, p := range ps {
		out[i] = BlogPost(p)
	}
	return out
}

func questionsFromDomain(qs []domain.QuizQuestion) []QuizQuestion {
	out := make([]QuizQuestion, len(qs))
	for i, q := range qs {
		opts := make([]QuizOption, len(q.Options))
		for j, o := range q.Options {
			opts[j] = QuizOption(o)
		}
		out[i] = QuizQuestion{ID: q.ID, Question: q.Question, Options: opts}
	}
	return out
}
