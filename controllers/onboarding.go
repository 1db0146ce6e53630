package controllers

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"servicehub/middleware"
	"servicehub/redis"
	"servicehub/services"
	"servicehub/services/onboarding"
)

// Staged slices live a day; an abandoned walk simply expires.
const stagingTTL = 24 * time.Hour

func stagingKey(userID uint) string {
	return "onboarding:provider:" + strconv.FormatUint(uint64(userID), 10)
}

// ValidateOnboardingStep checks one step's payload without persisting
// anything. The client calls this to gate advancement through the walk.
func ValidateOnboardingStep(c *fiber.Ctx) error {
	variant := c.Params("variant")
	step := c.Params("step")

	if !onboarding.StepInVariant(variant, step) {
		unknown := &onboarding.ErrUnknownStep{Step: step}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": unknown.Error(),
		})
	}

	if _, err := onboarding.ValidateStep(step, c.Body()); err != nil {
		var unknown *onboarding.ErrUnknownStep
		if errors.As(err, &unknown) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Step is valid",
		"step":    step,
	})
}

// StageOnboardingStep validates one step of the authenticated upgrade
// walk and stages it in Redis keyed by user id, so the walk survives a
// disconnect. Nothing reaches the relational store until submit.
func StageOnboardingStep(c *fiber.Ctx) error {
	auth := middleware.Auth(c)
	step := c.Params("step")

	if step == onboarding.StepAccount {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "The account step does not apply to an authenticated upgrade",
		})
	}

	if _, err := onboarding.ValidateStep(step, c.Body()); err != nil {
		var unknown *onboarding.ErrUnknownStep
		if errors.As(err, &unknown) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	key := stagingKey(auth.UserID)
	if err := redis.Client.HSet(redis.Ctx, key, step, string(c.Body())).Err(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to stage step",
		})
	}
	redis.Client.Expire(redis.Ctx, key, stagingTTL)

	return c.JSON(fiber.Map{
		"message": "Step staged",
		"step":    step,
	})
}

// OnboardingProgress returns the staged steps and the remaining sequence
// so a client can resume the walk where it left off.
func OnboardingProgress(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	staged, err := redis.Client.HGetAll(redis.Ctx, stagingKey(auth.UserID)).Result()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load progress",
		})
	}

	applicantType := stagedApplicantType(staged)
	steps := onboarding.Steps(onboarding.VariantProvider, applicantType, true)

	completed := make([]string, 0, len(staged))
	var next string
	for _, s := range steps {
		if _, ok := staged[s]; ok {
			completed = append(completed, s)
		} else if next == "" {
			next = s
		}
	}

	return c.JSON(fiber.Map{
		"steps":     steps,
		"completed": completed,
		"next":      next,
	})
}

// SubmitOnboarding merges the staged slices into the aggregate
// application and files it through the request lifecycle. The staging
// hash is cleared only after the submit succeeds.
func SubmitOnboarding(c *fiber.Ctx) error {
	auth := middleware.Auth(c)
	key := stagingKey(auth.UserID)

	staged, err := redis.Client.HGetAll(redis.Ctx, key).Result()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load staged steps",
		})
	}

	raw := make(map[string]json.RawMessage, len(staged))
	for step, payload := range staged {
		raw[step] = json.RawMessage(payload)
	}

	request, err := onboarding.Merge(stagedApplicantType(staged), raw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if _, err := lifecycle.Submit(auth.UserID, request); err != nil {
		if errors.Is(err, services.ErrAlreadyPending) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit application",
		})
	}

	redis.Client.Del(redis.Ctx, key)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Application submitted",
		"requestId": request.ID,
	})
}

func stagedApplicantType(staged map[string]string) string {
	var applicant onboarding.ApplicantStep
	if raw, ok := staged[onboarding.StepApplicant]; ok {
		json.Unmarshal([]byte(raw), &applicant)
	}
	return applicant.ApplicantType
}
