// Package fixtures loads the static storefront data embedded in the binary.
package fixtures

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/niksmo/bloomora/internal/core/domain"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed products.yaml
	productsYAML []byte

	//go:embed tasks.yaml
	tasksYAML []byte

	//go:embed blog.yaml
	blogYAML []byte

	//go:embed promos.yaml
	promosYAML []byte
)

type (
	product struct {
		ID            string  `yaml:"id"`
		Name          string  `yaml:"name"`
		BotanicalName string  `yaml:"botanical_name"`
		Price         int64   `yaml:"price"`
		SalePrice     int64   `yaml:"sale_price"`
		Description   string  `yaml:"description"`
		Category      string  `yaml:"category"`
		Difficulty    string  `yaml:"difficulty"`
		Light         string  `yaml:"light"`
		Water         string  `yaml:"water"`
		Image         string  `yaml:"image"`
		EcoScore      float64 `yaml:"eco_score"`
		IsNew         bool    `yaml:"is_new"`
		IsSoldOut     bool    `yaml:"is_sold_out"`
		Reviews       int     `yaml:"reviews"`
		Rating        float64 `yaml:"rating"`
	}

	careTask struct {
		ID        string        `yaml:"id"`
		PlantName string        `yaml:"plant_name"`
		TaskType  string        `yaml:"task_type"`
		DueIn     time.Duration `yaml:"due_in"`
		Image     string        `yaml:"image"`
	}

	blogPost struct {
		ID       string `yaml:"id"`
		Title    string `yaml:"title"`
		Category string `yaml:"category"`
		ReadTime string `yaml:"read_time"`
		Image    string `yaml:"image"`
		Excerpt  string `yaml:"excerpt"`
		Date     string `yaml:"date"`
	}
)

var ErrInvalidFixture = errors.New("invalid fixture")

type Data struct {
	Products []domain.Product
	Tasks    []domain.CareTask
	Posts    []domain.BlogPost
	Promos   []string
}

// Load decodes and validates the embedded data. Care task due dates
// are relative to now.
func Load(now time.Time) (Data, error) {
	const op = "fixtures.Load"

	products, err := Products(productsYAML)
	if err != nil {
		return Data{}, fmt.Errorf("%s: %w", op, err)
	}

	tasks, err := Tasks(tasksYAML, now)
	if err != nil {
		return Data{}, fmt.Errorf("%s: %w", op, err)
	}

	var posts []blogPost
	if err := decodeStrict(blogYAML, &posts); err != nil {
		return Data{}, fmt.Errorf("%s: blog: %w", op, err)
	}

	var promos []string
	if err := decodeStrict(promosYAML, &promos); err != nil {
		return Data{}, fmt.Errorf("%s: promos: %w", op, err)
	}

	return Data{
		Products: products,
		Tasks:    tasks,
		Posts:    toBlogPosts(posts),
		Promos:   promos,
	}, nil
}

func Products(data []byte) ([]domain.Product, error) {
	const op = "fixtures.Products"

	var vs []product
	if err := decodeStrict(data, &vs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seen := make(map[string]struct{}, len(vs))
	ps := make([]domain.Product, 0, len(vs))
	for _, v := range vs {
		if _, ok := seen[v.ID]; ok {
			return nil, fmt.Errorf(
				"%s: %w: duplicate product id %q", op, ErrInvalidFixture, v.ID,
			)
		}
		seen[v.ID] = struct{}{}

		p, err := v.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: product %q: %w", op, v.ID, err)
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func Tasks(data []byte, now time.Time) ([]domain.CareTask, error) {
	const op = "fixtures.Tasks"

	var vs []careTask
	if err := decodeStrict(data, &vs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ts := make([]domain.CareTask, 0, len(vs))
	for _, v := range vs {
		taskType, err := domain.ParseTaskType(v.TaskType)
		if err != nil {
			return nil, fmt.Errorf("%s: task %q: %w", op, v.ID, err)
		}
		ts = append(ts, domain.CareTask{
			ID:        v.ID,
			PlantName: v.PlantName,
			Type:      taskType,
			Due:       now.Add(v.DueIn),
			Image:     v.Image,
		})
	}
	return ts, nil
}

func (v product) toDomain() (domain.Product, error) {
	if v.ID == "" || v.Name == "" {
		return domain.Product{}, fmt.Errorf("%w: id and name are required", ErrInvalidFixture)
	}
	if v.Price < 0 || v.SalePrice < 0 {
		return domain.Product{}, fmt.Errorf("%w: negative price", ErrInvalidFixture)
	}
	if v.EcoScore < 0 || v.EcoScore > 10 {
		return domain.Product{}, fmt.Errorf("%w: eco score %v out of 0-10", ErrInvalidFixture, v.EcoScore)
	}

	category, err := domain.ParseCategory(v.Category)
	if err != nil {
		return domain.Product{}, err
	}
	difficulty, err := domain.ParseDifficulty(v.Difficulty)
	if err != nil {
		return domain.Product{}, err
	}
	light, err := domain.ParseLight(v.Light)
	if err != nil {
		return domain.Product{}, err
	}
	water, err := domain.ParseWater(v.Water)
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		ID:            v.ID,
		Name:          v.Name,
		BotanicalName: v.BotanicalName,
		Price:         v.Price,
		SalePrice:     v.SalePrice,
		Description:   v.Description,
		Category:      category,
		Difficulty:    difficulty,
		Light:         light,
		Water:         water,
		Image:         v.Image,
		EcoScore:      v.EcoScore,
		IsNew:         v.IsNew,
		IsSoldOut:     v.IsSoldOut,
		Reviews:       v.Reviews,
		Rating:        v.Rating,
	}, nil
}

func toBlogPosts(vs []blogPost) []domain.BlogPost {
	ps := make([]domain.BlogPost, len(vs))
	for i, v := range vs {
		ps[i] = domain.BlogPost{
			ID:       v.ID,
			Title:    v.Title,
			Category: v.Category,
			ReadTime: v.ReadTime,
			Image:    v.Image,
			Excerpt:  v.Excerpt,
			Date:     v.Date,
		}
	}
	return ps
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}
