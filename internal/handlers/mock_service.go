package handlers

import (
	"context"

	"home_inventory/internal/models"
	"home_inventory/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser   *models.User
	signUpErr    error
	genToken     string
	genUser      *models.User
	genErr       error
	parseID      string
	parseErr     error

	lastSignUpEmail    string
	lastSignUpPassword string
	lastGenEmail       string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	m.lastSignUpEmail = email
	m.lastSignUpPassword = password
	return m.signUpUser, m.signUpErr
}

func (m *mockAuth) GenerateToken(ctx context.Context, email, password string) (string, *models.User, error) {
	m.lastGenEmail = email
	m.lastGenPassword = password
	return m.genToken, m.genUser, m.genErr
}

func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockInventory struct {
	createItem *models.Item
	createErr  error
	listItems  []models.Item
	listErr    error
	updateItem *models.Item
	updateErr  error
	deleteErr  error

	lastCreateOwner  string
	lastCreateParams service.CreateItemParams
	lastListOwner    string
	lastUpdateItemID string
	lastUpdateOwner  string
	lastUpdateParams service.UpdateItemParams
	lastDeleteItemID string
	lastDeleteOwner  string
}

func (m *mockInventory) CreateItem(ctx context.Context, ownerID string, p service.CreateItemParams) (*models.Item, error) {
	m.lastCreateOwner = ownerID
	m.lastCreateParams = p
	return m.createItem, m.createErr
}

func (m *mockInventory) ListItems(ctx context.Context, ownerID string) ([]models.Item, error) {
	m.lastListOwner = ownerID
	return m.listItems, m.listErr
}

func (m *mockInventory) UpdateItem(ctx context.Context, itemID, ownerID string, p service.UpdateItemParams) (*models.Item, error) {
	m.lastUpdateItemID = itemID
	m.lastUpdateOwner = ownerID
	m.lastUpdateParams = p
	return m.updateItem, m.updateErr
}

func (m *mockInventory) DeleteItem(ctx context.Context, itemID, ownerID string) error {
	m.lastDeleteItemID = itemID
	m.lastDeleteOwner = ownerID
	return m.deleteErr
}
