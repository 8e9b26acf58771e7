package model

import "time"

// ZakatInput holds the assets and liabilities a user declares for calculation.
type ZakatInput struct {
	Cash             float64 `json:"cash" bson:"cash"`
	GoldValue        float64 `json:"goldValue" bson:"goldValue"`
	SilverValue      float64 `json:"silverValue" bson:"silverValue"`
	Investments      float64 `json:"investments" bson:"investments"`
	TradeGoods       float64 `json:"tradeGoods" bson:"tradeGoods"`
	Debts            float64 `json:"debts" bson:"debts"`
	GoldPricePerGram float64 `json:"goldPricePerGram" bson:"goldPricePerGram"`
}

// ZakatCalculation is an append-only history record. It carries no UpdatedAt.
type ZakatCalculation struct {
	ID         string     `json:"id" bson:"id"`
	UserID     string     `json:"userId" bson:"userId"`
	Input      ZakatInput `json:"input" bson:"input"`
	ZakatDue   float64    `json:"zakatDue" bson:"zakatDue"`
	AboveNisab bool       `json:"aboveNisab" bson:"aboveNisab"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
}
