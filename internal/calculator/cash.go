package calculator

import (
	"github.com/mmynk/milkagency/internal/models"
	"github.com/shopspring/decimal"
)

// CashTotal is the face value of the notes and coins in the till.
func CashTotal(d models.Denominations) decimal.Decimal {
	total := d.C500*500 + d.C200*200 + d.C100*100 + d.C50*50 + d.C20*20 + d.C10*10 +
		d.Coin20*20 + d.Coin10*10 + d.Coin5*5 + d.Coin2*2 + d.Coin1
	return decimal.NewFromInt(int64(total))
}
