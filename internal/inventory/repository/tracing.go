package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tavernhq/backoffice/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// GormIngredientRepositoryWithTracing wraps GormIngredientRepository with tracing
type GormIngredientRepositoryWithTracing struct {
	*GormIngredientRepository
}

// NewGormIngredientRepositoryWithTracing creates a new repository with tracing
func NewGormIngredientRepositoryWithTracing(db *gorm.DB) *GormIngredientRepositoryWithTracing {
	return &GormIngredientRepositoryWithTracing{
		GormIngredientRepository: NewGormIngredientRepository(db),
	}
}

// Create with tracing
func (r *GormIngredientRepositoryWithTracing) Create(ctx context.Context, ing *domain.Ingredient) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("ingredient.name", ing.Name),
			attribute.String("ingredient.unit", ing.Unit),
		),
	)
	defer span.End()

	err := r.GormIngredientRepository.Create(ctx, ing)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("ingredient.id", int(ing.ID)))
	return nil
}

// FindByID with tracing
func (r *GormIngredientRepositoryWithTracing) FindByID(ctx context.Context, id uint) (*domain.Ingredient, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.Int("ingredient.id", int(id)),
		),
	)
	defer span.End()

	ing, err := r.GormIngredientRepository.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("ingredient.name", ing.Name),
		attribute.String("ingredient.current_stock", ing.CurrentStock.String()),
	)
	return ing, nil
}

// Update with tracing
func (r *GormIngredientRepositoryWithTracing) Update(ctx context.Context, ing *domain.Ingredient) error {
	ctx, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(
			attribute.Int("ingredient.id", int(ing.ID)),
		),
	)
	defer span.End()

	err := r.GormIngredientRepository.Update(ctx, ing)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Delete with tracing
func (r *GormIngredientRepositoryWithTracing) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(
			attribute.Int("ingredient.id", int(id)),
		),
	)
	defer span.End()

	err := r.GormIngredientRepository.Delete(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
