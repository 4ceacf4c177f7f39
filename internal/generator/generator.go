package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/chrisdamba/mealgen/internal/datetext"
	"github.com/chrisdamba/mealgen/internal/factories"
	"github.com/chrisdamba/mealgen/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

var (
	ErrNoMealRows = errors.New("no meal rows generated: an axis is empty")
	ErrNoOrders   = errors.New("no orders sampled")
)

type Generator struct {
	Config *models.Config
	Log    zerolog.Logger

	fake  faker.Faker
	now   func() time.Time
	newID func() string
	// progress output, stderr unless replaced
	progressOut io.Writer
}

func NewGenerator(config *models.Config, log zerolog.Logger) *Generator {
	return &Generator{
		Config:      config,
		Log:         log,
		fake:        faker.NewWithSeed(rand.NewSource(config.Seed)),
		now:         time.Now,
		newID:       cuid.New,
		progressOut: os.Stderr,
	}
}

// Today is the configured reference day at midnight UTC.
func (g *Generator) Today() time.Time {
	return datetext.Midnight(g.Config.Today)
}

// Axes resolves the configured axis values in canonical order.
func (g *Generator) Axes() (models.Axes, error) {
	restaurants, err := models.ParseEnumList(g.Config.Restaurants, models.ParseRestaurant)
	if err != nil {
		return models.Axes{}, fmt.Errorf("restaurants: %w", err)
	}
	mealTypes, err := models.ParseEnumList(g.Config.MealTypes, models.ParseMealType)
	if err != nil {
		return models.Axes{}, fmt.Errorf("meal types: %w", err)
	}
	mealTimes, err := models.ParseEnumList(g.Config.MealTimes, models.ParseMealTime)
	if err != nil {
		return models.Axes{}, fmt.Errorf("meal times: %w", err)
	}

	today := g.Today()
	var dates []time.Time
	for _, offset := range distinct(g.Config.DayOffsets) {
		dates = append(dates, today.AddDate(0, 0, offset))
	}

	return models.Axes{
		Quantities:  distinct(g.Config.Quantities),
		Restaurants: restaurants,
		MealTypes:   mealTypes,
		MealTimes:   mealTimes,
		Notes:       distinct(g.Config.Notes),
		Dates:       dates,
	}, nil
}

// MealRows synthesizes one meal row per axis combination.
func (g *Generator) MealRows() ([]models.MealRow, error) {
	axes, err := g.Axes()
	if err != nil {
		return nil, err
	}
	rules, err := g.Config.InclusionRules()
	if err != nil {
		return nil, fmt.Errorf("inclusion rules: %w", err)
	}

	factory := &factories.MealRowFactory{Rules: rules}
	if g.Config.SimulatePrices {
		prices, err := factories.NewPriceList(g.fake, axes, g.Config.MinPrice, g.Config.MaxPrice, g.Config.MealPrices)
		if err != nil {
			return nil, fmt.Errorf("price list: %w", err)
		}
		factory.Prices = prices
	}

	combinations := CartesianIndices(axes.Lengths()...)
	if len(combinations) == 0 {
		return nil, fmt.Errorf("%w: lengths %v", ErrNoMealRows, axes.Lengths())
	}

	rows := make([]models.MealRow, 0, len(combinations))
	for _, idx := range combinations {
		rows = append(rows, factory.CreateMealRow(axes.Resolve(idx)))
	}
	g.Log.Debug().Int("combinations", len(combinations)).Msg("meal rows synthesized")
	return rows, nil
}

// Generate builds the full dataset: meal rows, sampled orders and their filter criteria.
func (g *Generator) Generate() (*models.Dataset, error) {
	rows, err := g.MealRows()
	if err != nil {
		return nil, err
	}

	groupings, err := SampleGroupings(rows, g.Config.SampleSize, g.Config.Sampling)
	if err != nil {
		return nil, err
	}
	if len(groupings) == 0 {
		return nil, ErrNoOrders
	}

	orderFactory := &factories.OrderFactory{}
	orders := orderFactory.CreateOrders(groupings)

	today := g.Today()
	fixtures := make([]models.OrderFixture, 0, len(orders))
	for _, order := range orders {
		criteria, err := CriteriaForOrder(order, today, g.Config.DateWindows)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, models.OrderFixture{Order: order, Filters: criteria})
	}

	dataset := &models.Dataset{
		RunID:       g.newID(),
		Today:       today,
		GeneratedAt: g.now().UTC(),
		MealRows:    len(rows),
		Fixtures:    fixtures,
	}

	metrics := dataset.Metrics()
	g.Log.Info().
		Str("run_id", dataset.RunID).
		Int("rows", len(rows)).
		Int("orders", metrics.TotalOrders).
		Int("single_row_orders", metrics.SingleRowOrders).
		Int("largest_order", metrics.LargestOrder).
		Msg("dataset generated")
	return dataset, nil
}

// Run generates a dataset and writes it to the configured destination.
func (g *Generator) Run(ctx context.Context) error {
	dataset, err := g.Generate()
	if err != nil {
		return err
	}
	if g.Config.DryRun {
		g.Log.Info().Str("run_id", dataset.RunID).Msg("dry run, nothing written")
		return nil
	}

	output, err := g.determineOutputDestination(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := output.Close(); err != nil {
			g.Log.Error().Err(err).Msg("closing output")
		}
	}()

	return g.Write(ctx, dataset, output)
}

// Write flattens dataset into order row records and sends each one to output.
func (g *Generator) Write(ctx context.Context, dataset *models.Dataset, output OutputDestination) error {
	records := NewOrderRowRecords(dataset)
	topic := g.Config.Topic
	if topic == "" {
		topic = models.TopicOrderRows
	}

	bar := progressbar.NewOptions(len(records),
		progressbar.OptionSetWriter(g.progressOut),
		progressbar.OptionSetDescription("writing order rows"),
		progressbar.OptionSetVisibility(g.Config.ShowProgress),
		progressbar.OptionClearOnFinish(),
	)

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("error serializing record: %w", err)
		}
		if err := output.WriteMessage(topic, msg); err != nil {
			return fmt.Errorf("failed to write order %d row %d: %w", record.OrderNumber, record.RowIndex, err)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	g.Log.Info().
		Str("run_id", dataset.RunID).
		Str("topic", topic).
		Int("records", len(records)).
		Msg("dataset written")
	return nil
}

func distinct[T comparable](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
