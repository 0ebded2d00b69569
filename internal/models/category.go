package models

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryIconRequired = errors.New("category icon is required")
)

// Category is keyed by (user_id, name, type): the same name may exist once per type.
type Category struct {
	UserID    string    `gorm:"type:varchar(255);primaryKey" json:"user_id"`
	Name      string    `gorm:"type:varchar(100);primaryKey" json:"name"`
	Type      string    `gorm:"type:varchar(10);primaryKey" json:"type"`
	Icon      string    `gorm:"type:varchar(32);not null" json:"icon"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (c *Category) TableName() string {
	return "categories"
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameRequired
	}
	if !IsValidTransactionType(c.Type) {
		return ErrInvalidTransactionType
	}
	if strings.TrimSpace(c.Icon) == "" {
		return ErrCategoryIconRequired
	}
	return nil
}

// SuggestedCategory is a starter category offered by onboarding
type SuggestedCategory struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// SuggestedIncomeCategories are offered to new users for income entries
var SuggestedIncomeCategories = []SuggestedCategory{
	{Name: "Salário", Icon: "💰"},
	{Name: "Freelance", Icon: "💻"},
	{Name: "Investimentos", Icon: "📈"},
	{Name: "Aluguel", Icon: "🏠"},
	{Name: "Dividendos", Icon: "💵"},
	{Name: "Presente", Icon: "🎁"},
	{Name: "Bônus", Icon: "🎯"},
	{Name: "Comissão", Icon: "💎"},
	{Name: "Reembolso", Icon: "💱"},
	{Name: "Prêmio", Icon: "🏆"},
	{Name: "Venda", Icon: "🏷️"},
}

// SuggestedExpenseCategories are offered to new users for expense entries
var SuggestedExpenseCategories = []SuggestedCategory{
	{Name: "Alimentação", Icon: "🍽️"},
	{Name: "Mercado", Icon: "🛒"},
	{Name: "Transporte", Icon: "🚗"},
	{Name: "Moradia", Icon: "🏠"},
	{Name: "Aluguel", Icon: "🏢"},
	{Name: "Condomínio", Icon: "🏘️"},
	{Name: "IPTU", Icon: "📑"},
	{Name: "Água", Icon: "💧"},
	{Name: "Luz", Icon: "💡"},
	{Name: "Gás", Icon: "🔥"},
	{Name: "Internet", Icon: "📶"},
	{Name: "Telefone", Icon: "☎️"},
	{Name: "Celular", Icon: "📱"},
	{Name: "Saúde", Icon: "⚕️"},
	{Name: "Plano de Saúde", Icon: "🏥"},
	{Name: "Remédios", Icon: "💊"},
	{Name: "Academia", Icon: "🏋️‍♂️"},
	{Name: "Educação", Icon: "📚"},
	{Name: "Cursos", Icon: "👨‍🎓"},
	{Name: "Material Escolar", Icon: "✏️"},
	{Name: "Lazer", Icon: "🎮"},
	{Name: "Viagem", Icon: "✈️"},
	{Name: "Cinema", Icon: "🎬"},
	{Name: "Teatro", Icon: "🎭"},
	{Name: "Restaurante", Icon: "🍽️"},
	{Name: "Roupas", Icon: "👕"},
	{Name: "Calçados", Icon: "👞"},
	{Name: "Acessórios", Icon: "👜"},
	{Name: "Streaming", Icon: "📺"},
	{Name: "Netflix", Icon: "🎬"},
	{Name: "Spotify", Icon: "🎵"},
	{Name: "Prime Video", Icon: "🎥"},
	{Name: "Disney+", Icon: "🎪"},
	{Name: "HBO Max", Icon: "🎦"},
	{Name: "Manutenção", Icon: "🔧"},
	{Name: "Limpeza", Icon: "🧹"},
	{Name: "Presente", Icon: "🎁"},
	{Name: "Pet", Icon: "🐾"},
	{Name: "Seguro", Icon: "🔒"},
}
