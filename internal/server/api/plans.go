package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/formcoach/internal/advisor"
)

// defaultWorkoutDuration is the assumed session length in minutes when the
// client does not send one.
const defaultWorkoutDuration = 30

// PlansHandler serves generated workout plans and nutrition advice.
type PlansHandler struct{}

// NewPlansHandler creates a new PlansHandler.
func NewPlansHandler() *PlansHandler {
	return &PlansHandler{}
}

// ServeHTTP routes between the workout-plan and nutrition-advice endpoints.
func (h *PlansHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	switch r.URL.Path {
	case "/api/workout-plan":
		h.workoutPlan(w, r)
	case "/api/nutrition-advice":
		h.nutritionAdvice(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

type userProfile struct {
	FitnessLevel string `json:"fitness_level"`
}

type workoutPlanRequest struct {
	UserProfile        userProfile `json:"user_profile"`
	Goals              []string    `json:"goals"`
	AvailableEquipment []string    `json:"available_equipment"`
	WorkoutDuration    int         `json:"workout_duration"`
}

type workoutPlanResponse struct {
	WorkoutPlans      []advisor.WorkoutPlan `json:"workout_plans"`
	TotalExercises    int                   `json:"total_exercises"`
	EstimatedDuration int                   `json:"estimated_duration"`
	Timestamp         int64                 `json:"timestamp"`
}

// workoutPlan handles POST /api/workout-plan.
func (h *PlansHandler) workoutPlan(w http.ResponseWriter, r *http.Request) {
	var req workoutPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	level := req.UserProfile.FitnessLevel
	if level == "" {
		level = "beginner"
	}
	duration := req.WorkoutDuration
	if duration <= 0 {
		duration = defaultWorkoutDuration
	}

	plans := advisor.WorkoutPlans(level)
	writeJSON(w, http.StatusOK, workoutPlanResponse{
		WorkoutPlans:      plans,
		TotalExercises:    len(plans),
		EstimatedDuration: duration,
		Timestamp:         time.Now().Unix(),
	})
}

type nutritionAdviceRequest struct {
	UserProfile         userProfile `json:"user_profile"`
	DietaryRestrictions []string    `json:"dietary_restrictions"`
	MealType            string      `json:"meal_type"`
}

type nutritionAdviceResponse struct {
	NutritionAdvice []advisor.NutritionAdvice `json:"nutrition_advice"`
	MealType        string                    `json:"meal_type"`
	Timestamp       int64                     `json:"timestamp"`
}

// nutritionAdvice handles POST /api/nutrition-advice.
func (h *PlansHandler) nutritionAdvice(w http.ResponseWriter, r *http.Request) {
	var req nutritionAdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	mealType := req.MealType
	if mealType == "" {
		mealType = "general"
	}

	writeJSON(w, http.StatusOK, nutritionAdviceResponse{
		NutritionAdvice: advisor.NutritionPlan(mealType),
		MealType:        mealType,
		Timestamp:       time.Now().Unix(),
	})
}
