package domain_test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var usd = currency.USD

func money(amount string) domain.Money {
	return domain.MustMoney(amount, usd)
}

func randomName() string {
	return gofakeit.ProductName() + " " + gofakeit.LetterN(6)
}

func randomMoney() domain.Money {
	return domain.NewMoney(decimal.NewFromFloat(gofakeit.Price(1, 100)), usd)
}

func randomProduct(stock int, opts ...domain.ProductOption) *domain.Product {
	return domain.MustProduct(randomName(), randomMoney(), stock, opts...)
}
