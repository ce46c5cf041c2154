// controllers/credit_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-shop-backoffice/config"
	"go-shop-backoffice/models"
	"go-shop-backoffice/service"
	"go-shop-backoffice/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errGroupNotFound   = errors.New("GROUP_NOT_FOUND")
	errNothingToSettle = errors.New("NOTHING_TO_SETTLE")
)

// for SELECT ... FOR UPDATE
func clauseUpdateLock() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// creditView decorates a row with its derived fields so the list is
// directly renderable.
type creditView struct {
	models.Credit
	Balance float64 `json:"balance"`
	Settled bool    `json:"settled"`
}

func toCreditViews(rows []models.Credit) []creditView {
	views := make([]creditView, 0, len(rows))
	for _, cr := range rows {
		views = append(views, creditView{
			Credit:  cr,
			Balance: service.Balance(cr),
			Settled: service.IsSettled(cr),
		})
	}
	return views
}

// ===== list credits (?status=open/settled, ?customer_id=)
func CreditList(c *gin.Context) {
	q := config.DB.Model(&models.Credit{}).Preload("Customer").Order("created_at DESC, id DESC")

	if cid := c.Query("customer_id"); cid != "" {
		q = q.Where("customer_id = ?", cid)
	}

	var rows []models.Credit
	if err := q.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch credits", "error": utils.ErrMessage(err)})
		return
	}

	// settled-ness mixes stored signals, so filter after the fetch
	if st := c.Query("status"); st == "open" || st == "settled" {
		wantSettled := st == "settled"
		filtered := rows[:0]
		for _, cr := range rows {
			if service.IsSettled(cr) == wantSettled {
				filtered = append(filtered, cr)
			}
		}
		rows = filtered
	}

	c.JSON(http.StatusOK, gin.H{"message": "Credits fetched", "data": toCreditViews(rows)})
}

// ===== grouped view for the collection screen
func CreditGroups(c *gin.Context) {
	var rows []models.Credit
	if err := config.DB.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch credits", "error": utils.ErrMessage(err)})
		return
	}

	groups := service.GroupCredits(rows)

	// hide fully settled groups unless asked for
	if c.Query("include_settled") != "true" {
		open := groups[:0]
		for _, g := range groups {
			if g.TotalBalance > service.SettleEpsilon {
				open = append(open, g)
			}
		}
		groups = open
	}

	var outstanding float64
	for _, g := range groups {
		outstanding += g.TotalBalance
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Credit groups fetched",
		"summary": gin.H{"groups": len(groups), "outstanding": outstanding},
		"data":    groups,
	})
}

type CreditCreateInput struct {
	CustomerID    *uint   `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Note          string  `json:"note"`
}

func CreditCreate(c *gin.Context) {
	var in CreditCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// resolve snapshots from the customer link when present
	if in.CustomerID != nil {
		var cust models.Customer
		if err := config.DB.First(&cust, *in.CustomerID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Customer not found"})
			return
		}
		if in.CustomerName == "" {
			in.CustomerName = cust.Name
		}
		if in.CustomerPhone == "" {
			in.CustomerPhone = cust.Phone
		}
	}
	if in.CustomerID == nil && strings.TrimSpace(in.CustomerName) == "" && service.NormalizePhone(in.CustomerPhone) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Credit needs a customer, phone, or name"})
		return
	}

	adminID, err := currentAdminID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	credit := models.Credit{
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		Amount:        in.Amount,
		Status:        models.CreditStatusUnpaid,
		Note:          in.Note,
		CreatedByID:   adminID,
	}
	if err := config.DB.Create(&credit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create credit", "error": utils.ErrMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Credit created", "data": credit})
}

type CreditUpdateInput struct {
	Amount *float64 `json:"amount,omitempty"`
	Note   *string  `json:"note,omitempty"`
}

func CreditUpdate(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var credit models.Credit
	if err := config.DB.First(&credit, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Credit not found"})
		return
	}
	if service.IsSettled(credit) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Settled credits cannot be edited"})
		return
	}

	var in CreditUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]any{}
	if in.Amount != nil {
		if *in.Amount < credit.AmountPaid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount cannot drop below what was already paid"})
			return
		}
		updates["amount"] = *in.Amount
	}
	if in.Note != nil {
		updates["note"] = *in.Note
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}
	updates["updated_at"] = time.Now()

	if err := config.DB.Model(&credit).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update credit", "error": utils.ErrMessage(err)})
		return
	}

	config.DB.First(&credit, id)
	c.JSON(http.StatusOK, gin.H{"message": "Credit updated", "data": credit})
}

// ===== receipts of one credit
func CreditPaymentHistory(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var credit models.Credit
	if err := config.DB.First(&credit, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Credit not found"})
		return
	}

	var payments []models.CreditPayment
	if err := config.DB.Where("credit_id = ?", credit.ID).Order("received_at DESC, id DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch payments", "error": utils.ErrMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payments fetched", "data": payments})
}

type CreditGroupPayInput struct {
	GroupKey string  `json:"group_key" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Method   string  `json:"method"`
	Memo     string  `json:"memo"`
}

// ===== one payment spread across a customer's open credits,
// oldest first
func CreditGroupPay(c *gin.Context) {
	var in CreditGroupPayInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	method := strings.ToUpper(strings.TrimSpace(in.Method))
	if method == "" {
		method = "CASH"
	}
	if method != "CASH" && method != "BANK" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Method must be CASH or BANK"})
		return
	}

	adminID, err := currentAdminID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var splits []service.PaymentSplit
	var applied float64

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// 1) Resolve the group key to its member ids
		var all []models.Credit
		if err := tx.Find(&all).Error; err != nil {
			return err
		}
		var memberIDs []uint
		for _, g := range service.GroupCredits(all) {
			if g.Key == in.GroupKey {
				for _, m := range g.Members {
					memberIDs = append(memberIDs, m.ID)
				}
				break
			}
		}
		if len(memberIDs) == 0 {
			return errGroupNotFound
		}

		// 2) Lock the members so two cashiers cannot settle the same
		// rows at once
		var locked []models.Credit
		if err := tx.Clauses(clauseUpdateLock()).Where("id IN ?", memberIDs).Find(&locked).Error; err != nil {
			return err
		}

		// 3) Split the payment oldest-first over the locked state
		splits, applied = service.AllocatePayment(locked, in.Amount)
		if applied <= service.SettleEpsilon {
			return errNothingToSettle
		}

		byID := make(map[uint]models.Credit, len(locked))
		for _, cr := range locked {
			byID[cr.ID] = cr
		}

		now := time.Now().UTC()

		var seq int64
		if err := tx.Model(&models.CreditPayment{}).Count(&seq).Error; err != nil {
			return err
		}

		for i, sp := range splits {
			cr := byID[sp.CreditID]
			newPaid := cr.AmountPaid + sp.Applied

			updates := map[string]any{
				"amount_paid": gorm.Expr("amount_paid + ?", sp.Applied),
				"updated_at":  now,
			}
			if newPaid >= cr.Amount-service.SettleEpsilon {
				updates["status"] = models.CreditStatusPaid
				updates["is_paid"] = true
				updates["paid_at"] = &now
			} else {
				updates["status"] = models.CreditStatusPartial
			}

			res := tx.Model(&models.Credit{}).Where("id = ?", sp.CreditID).Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errNothingToSettle
			}

			receipt := models.CreditPayment{
				RefCode:      utils.GenReceiptRef(seq+int64(i)+1, now),
				CreditID:     sp.CreditID,
				Amount:       sp.Applied,
				Method:       method,
				ReceivedAt:   now,
				ReceivedByID: adminID,
				Note:         in.Memo,
			}
			if err := tx.Create(&receipt).Error; err != nil {
				return err
			}
		}

		// 4) Memo lands on the newest credit of the group
		if strings.TrimSpace(in.Memo) != "" {
			newest := byID[memberIDs[0]]
			for _, cr := range locked {
				if cr.CreatedAt.After(newest.CreatedAt) {
					newest = cr
				}
			}
			note := newest.Note
			if note != "" {
				note += " | "
			}
			note += in.Memo
			if err := tx.Model(&models.Credit{}).Where("id = ?", newest.ID).
				Updates(map[string]any{"note": note, "updated_at": now}).Error; err != nil {
				return err
			}
		}

		return nil
	})

	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message": "Payment received",
			"data": gin.H{
				"group_key": in.GroupKey,
				"requested": in.Amount,
				"applied":   applied,
				"splits":    splits,
			},
		})
	case errors.Is(err, errGroupNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Credit group not found"})
	case errors.Is(err, errNothingToSettle):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Group has nothing left to settle"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to record payment", "error": utils.ErrMessage(err)})
	}
}
