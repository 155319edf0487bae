package repository

import (
	"context"

	"brewnote.dev/BrewNote/pkg/model"
)

type StatsRepository interface {
	GetStatistics(ctx context.Context) (*model.Statistics, error)
}

// GetStatistics aggregates the whole journal in two queries: recipe-level
// numbers (including best scores pulled out of the JSON sensory columns) and
// the collection count.
func (r *Repository) GetStatistics(ctx context.Context) (*model.Statistics, error) {
	var stats model.Statistics

	result := r.DB.WithContext(ctx).Table("recipes").
		Select("count(*) as recipe_count, " +
			"sum(case when favorite then 1 else 0 end) as favorite_count, " +
			"count(distinct origin) filter (where origin <> '') as distinct_origins, " +
			"count(distinct brewing_method) filter (where brewing_method <> '') as distinct_methods, " +
			"coalesce(avg(coffee_water_ratio), 0) as average_ratio, " +
			"coalesce(avg(extraction_yield), 0) as average_extraction, " +
			"coalesce(avg(tds), 0) as average_tds, " +
			"coalesce(avg((traditional_sca ->> 'finalScore')::numeric), 0) as average_traditional_score, " +
			"coalesce(avg((cva_affective ->> 'score')::numeric), 0) as average_cva_score, " +
			"coalesce(max((traditional_sca ->> 'finalScore')::numeric), 0) as best_traditional_score, " +
			"coalesce(max((cva_affective ->> 'score')::numeric), 0) as best_cva_score").
		Where("deleted_at IS NULL").
		Scan(&stats)
	if result.Error != nil {
		return nil, result.Error
	}

	countResult := r.DB.WithContext(ctx).Table("collections").
		Where("deleted_at IS NULL").
		Count(&stats.CollectionCount)
	if countResult.Error != nil {
		return nil, countResult.Error
	}

	stats.AverageRatio = model.Round2(stats.AverageRatio)
	stats.AverageExtraction = model.Round2(stats.AverageExtraction)
	stats.AverageTDS = model.Round2(stats.AverageTDS)
	stats.AverageTraditionalScore = model.Round2(stats.AverageTraditionalScore)
	stats.AverageCVAScore = model.Round2(stats.AverageCVAScore)

	return &stats, nil
}
