package advisor

// WorkoutPlan is one exercise prescription in a generated plan.
type WorkoutPlan struct {
	ExerciseName string `json:"exercise_name"`
	Sets         int    `json:"sets"`
	Reps         int    `json:"reps"`
	// Duration is the hold time in seconds for time-based exercises, 0
	// for rep-based ones.
	Duration      int      `json:"duration"`
	Difficulty    string   `json:"difficulty"`
	Instructions  string   `json:"instructions"`
	TargetMuscles []string `json:"target_muscles"`
}

// NutritionAdvice is one meal recommendation.
type NutritionAdvice struct {
	MealType       string             `json:"meal_type"`
	FoodItems      []string           `json:"food_items"`
	Calories       int                `json:"calories"`
	Macronutrients map[string]float64 `json:"macronutrients"`
	Timing         string             `json:"timing"`
	Benefits       []string           `json:"benefits"`
}

// WorkoutPlans returns a workout plan for the given fitness level. Any
// level other than "beginner" gets the intermediate plan.
func WorkoutPlans(fitnessLevel string) []WorkoutPlan {
	if fitnessLevel == "beginner" {
		return []WorkoutPlan{
			{
				ExerciseName:  "Bodyweight Squats",
				Sets:          3,
				Reps:          10,
				Difficulty:    "beginner",
				Instructions:  "Stand with feet shoulder-width apart, lower down as if sitting in a chair, then return to standing.",
				TargetMuscles: []string{"quadriceps", "glutes", "hamstrings"},
			},
			{
				ExerciseName:  "Push-ups",
				Sets:          3,
				Reps:          8,
				Difficulty:    "beginner",
				Instructions:  "Start in plank position, lower chest to ground, push back up.",
				TargetMuscles: []string{"chest", "shoulders", "triceps"},
			},
			{
				ExerciseName:  "Plank",
				Sets:          3,
				Reps:          1,
				Duration:      30,
				Difficulty:    "beginner",
				Instructions:  "Hold plank position, keeping body straight from head to heels.",
				TargetMuscles: []string{"core", "shoulders"},
			},
		}
	}

	return []WorkoutPlan{
		{
			ExerciseName:  "Jump Squats",
			Sets:          4,
			Reps:          12,
			Difficulty:    "intermediate",
			Instructions:  "Perform squats with explosive jump at the top.",
			TargetMuscles: []string{"quadriceps", "glutes", "calves"},
		},
		{
			ExerciseName:  "Diamond Push-ups",
			Sets:          4,
			Reps:          10,
			Difficulty:    "intermediate",
			Instructions:  "Push-ups with hands in diamond shape under chest.",
			TargetMuscles: []string{"chest", "triceps", "shoulders"},
		},
		{
			ExerciseName:  "Mountain Climbers",
			Sets:          4,
			Reps:          20,
			Difficulty:    "intermediate",
			Instructions:  "Alternate bringing knees to chest in plank position.",
			TargetMuscles: []string{"core", "shoulders", "legs"},
		},
	}
}

// NutritionPlan returns meal recommendations for the given meal type.
// Unknown meal types get the general recommendation.
func NutritionPlan(mealType string) []NutritionAdvice {
	switch mealType {
	case "breakfast":
		return []NutritionAdvice{
			{
				MealType:       "breakfast",
				FoodItems:      []string{"oatmeal", "banana", "almonds", "greek yogurt"},
				Calories:       400,
				Macronutrients: map[string]float64{"protein": 25, "carbs": 45, "fat": 15},
				Timing:         "Within 1 hour of waking",
				Benefits:       []string{"sustained energy", "muscle recovery", "fiber intake"},
			},
		}
	case "post_workout":
		return []NutritionAdvice{
			{
				MealType:       "post_workout",
				FoodItems:      []string{"protein shake", "banana", "almond butter"},
				Calories:       350,
				Macronutrients: map[string]float64{"protein": 30, "carbs": 35, "fat": 12},
				Timing:         "Within 30 minutes of workout",
				Benefits:       []string{"muscle recovery", "glycogen replenishment", "protein synthesis"},
			},
		}
	default:
		return []NutritionAdvice{
			{
				MealType:       "general",
				FoodItems:      []string{"grilled chicken", "quinoa", "mixed vegetables"},
				Calories:       500,
				Macronutrients: map[string]float64{"protein": 35, "carbs": 40, "fat": 20},
				Timing:         "Main meal",
				Benefits:       []string{"balanced nutrition", "muscle maintenance", "vitamin intake"},
			},
		}
	}
}
