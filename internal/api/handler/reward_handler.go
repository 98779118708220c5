package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rewardsystem/rewards-api/internal/api/metrics"
	"github.com/rewardsystem/rewards-api/internal/core/domain"
	"github.com/rewardsystem/rewards-api/internal/core/ports"
)

// RewardHandler serves computed reward summaries.
type RewardHandler struct {
	rewards ports.RewardService
}

func NewRewardHandler(rewards ports.RewardService) *RewardHandler {
	return &RewardHandler{rewards: rewards}
}

// All returns the reward summary for every customer with activity in the
// reporting window.
//
// @Summary      Rewards for all customers
// @Tags         rewards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.CustomerRewards
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/api/rewards [get]
func (h *RewardHandler) All(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.RewardComputeDuration.WithLabelValues("all"))
	defer timer.ObserveDuration()

	rewards, err := h.rewards.AllRewards(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rewards)
}

// ByCustomer returns one customer's reward summary.
//
// @Summary      Rewards for one customer
// @Tags         rewards
// @Produce      json
// @Security     BearerAuth
// @Param        customer_id  path      int  true  "Customer ID"
// @Success      200  {object}  domain.CustomerRewards
// @Failure      404  {object}  errorResponse
// @Router       /v1/api/customers/{customer_id}/rewards [get]
func (h *RewardHandler) ByCustomer(c echo.Context) error {
	if _, err := ctxPrincipal(c); err != nil {
		return err
	}

	customerID, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil || customerID <= 0 {
		return domain.Validation("customer_id must be a positive integer")
	}

	timer := prometheus.NewTimer(metrics.RewardComputeDuration.WithLabelValues("customer"))
	defer timer.ObserveDuration()

	rewards, err := h.rewards.CustomerRewards(c.Request().Context(), customerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rewards)
}
