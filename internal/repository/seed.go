package repository

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

type seedRow struct {
	Currency  string            `yaml:"currency"`
	Products  []productSeedRow  `yaml:"products"`
	Customers []customerSeedRow `yaml:"customers"`
}

type productSeedRow struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Price       string   `yaml:"price"`
	Stock       int      `yaml:"stock"`
	Expires     string   `yaml:"expires"`
	WeightGrams *float64 `yaml:"weight_grams"`
}

type customerSeedRow struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Balance string `yaml:"balance"`
}

// Seed is a provisioned catalog and customer directory sharing one currency.
type Seed struct {
	Currency  currency.Unit
	Catalog   port.Catalog
	Customers port.CustomerDirectory
}

// LoadSeed reads a YAML seed document. Any invalid row fails the whole load.
func LoadSeed(r io.Reader) (Seed, error) {
	var row seedRow

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&row); err != nil {
		return Seed{}, fmt.Errorf("dec.Decode: %w", err)
	}

	unit, err := currency.ParseISO(row.Currency)
	if err != nil {
		return Seed{}, fmt.Errorf("currency[%s] is not valid: %w", row.Currency, err)
	}

	products, err := mapProductSeedRowsToDomain(row.Products, unit)
	if err != nil {
		return Seed{}, fmt.Errorf("mapProductSeedRowsToDomain: %w", err)
	}

	customers, err := mapCustomerSeedRowsToDomain(row.Customers, unit)
	if err != nil {
		return Seed{}, fmt.Errorf("mapCustomerSeedRowsToDomain: %w", err)
	}

	catalog, err := NewCatalog(products...)
	if err != nil {
		return Seed{}, fmt.Errorf("NewCatalog: %w", err)
	}

	directory, err := NewCustomers(customers...)
	if err != nil {
		return Seed{}, fmt.Errorf("NewCustomers: %w", err)
	}

	return Seed{
		Currency:  unit,
		Catalog:   catalog,
		Customers: directory,
	}, nil
}

func mapProductSeedRowToDomain(row productSeedRow, unit currency.Unit) (*domain.Product, error) {
	price, err := decimal.NewFromString(row.Price)
	if err != nil {
		return nil, fmt.Errorf("price[%s] is not valid: %w", row.Price, err)
	}

	var opts []domain.ProductOption

	if row.ID != "" {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, fmt.Errorf("id[%s] is not valid: %w", row.ID, err)
		}
		opts = append(opts, domain.WithID(id))
	}

	if row.Expires != "" {
		expires, err := domain.ParseDate(row.Expires)
		if err != nil {
			return nil, fmt.Errorf("domain.ParseDate: %w", err)
		}
		opts = append(opts, domain.WithExpiry(expires))
	}

	if row.WeightGrams != nil {
		opts = append(opts, domain.WithShipping(*row.WeightGrams))
	}

	p, err := domain.NewProduct(row.Name, domain.NewMoney(price, unit), row.Stock, opts...)
	if err != nil {
		return nil, fmt.Errorf("domain.NewProduct: %w", err)
	}

	return p, nil
}

func mapProductSeedRowsToDomain(rows []productSeedRow, unit currency.Unit) ([]*domain.Product, error) {
	var products []*domain.Product

	for i, row := range rows {
		p, err := mapProductSeedRowToDomain(row, unit)
		if err != nil {
			return nil, fmt.Errorf("products[%d]: %w", i, err)
		}

		products = append(products, p)
	}

	return products, nil
}

func mapCustomerSeedRowToDomain(row customerSeedRow, unit currency.Unit) (*domain.Customer, error) {
	balance, err := decimal.NewFromString(row.Balance)
	if err != nil {
		return nil, fmt.Errorf("balance[%s] is not valid: %w", row.Balance, err)
	}

	c, err := domain.NewCustomer(row.Name, domain.NewMoney(balance, unit))
	if err != nil {
		return nil, fmt.Errorf("domain.NewCustomer: %w", err)
	}

	if row.ID != "" {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, fmt.Errorf("id[%s] is not valid: %w", row.ID, err)
		}
		c.ID = id
	}

	return c, nil
}

func mapCustomerSeedRowsToDomain(rows []customerSeedRow, unit currency.Unit) ([]*domain.Customer, error) {
	var customers []*domain.Customer

	for i, row := range rows {
		c, err := mapCustomerSeedRowToDomain(row, unit)
		if err != nil {
			return nil, fmt.Errorf("customers[%d]: %w", i, err)
		}

		customers = append(customers, c)
	}

	return customers, nil
}
