package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrArticleNotFound = errors.New("article not found")

type EducationService struct {
	db *gorm.DB
}

func NewEducationService(db *gorm.DB) *EducationService {
	return &EducationService{db: db}
}

// List returns published articles, optionally filtered by category and a
// title/excerpt search term.
func (s *EducationService) List(category, search string) ([]models.Article, error) {
	q := s.db.Order("published_date DESC")
	if category != "" && category != "All" {
		q = q.Where("category = ?", category)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ?", like, like)
	}
	var articles []models.Article
	err := q.Find(&articles).Error
	return articles, err
}

// Get fetches one article and bumps its view counter.
func (s *EducationService) Get(id uuid.UUID) (*models.Article, error) {
	var article models.Article
	if err := s.db.First(&article, "id = ?", id).Error; err != nil {
		return nil, ErrArticleNotFound
	}
	s.db.Model(&article).Update("views", gorm.Expr("views + 1"))
	article.Views++
	return &article, nil
}

// Categories returns the distinct article categories, with the catch-all
// "All" entry first.
func (s *EducationService) Categories() ([]string, error) {
	var categories []string
	err := s.db.Model(&models.Article{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return append([]string{"All"}, categories...), nil
}

func (s *EducationService) Create(req *dto.ArticleRequest) (*models.Article, error) {
	if req.Title == "" || req.Content == "" {
		return nil, errors.New("title and content are required")
	}

	article := models.Article{
		ID:            uuid.New(),
		Title:         req.Title,
		Category:      req.Category,
		FeaturedImage: req.FeaturedImage,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		PublishedDate: time.Now(),
	}
	if req.Author != "" {
		article.Author = req.Author
	}
	if req.ReadingTime > 0 {
		article.ReadingTime = req.ReadingTime
	}
	if len(req.Tags) > 0 {
		if b, err := json.Marshal(req.Tags); err == nil {
			article.Tags = datatypes.JSON(b)
		}
	}

	if err := s.db.Create(&article).Error; err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	return &article, nil
}

func (s *EducationService) Update(id uuid.UUID, req *dto.ArticleRequest) (*models.Article, error) {
	var article models.Article
	if err := s.db.First(&article, "id = ?", id).Error; err != nil {
		return nil, ErrArticleNotFound
	}

	updates := map[string]interface{}{
		"title":          req.Title,
		"category":       req.Category,
		"featured_image": req.FeaturedImage,
		"excerpt":        req.Excerpt,
		"content":        req.Content,
	}
	if req.Author != "" {
		updates["author"] = req.Author
	}
	if req.ReadingTime > 0 {
		updates["reading_time"] = req.ReadingTime
	}
	if len(req.Tags) > 0 {
		if b, err := json.Marshal(req.Tags); err == nil {
			updates["tags"] = datatypes.JSON(b)
		}
	}

	if err := s.db.Model(&article).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *EducationService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Article{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}
