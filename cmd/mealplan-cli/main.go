// Command mealplan-cli is the terminal frontend: browse cookbooks and
// recipes over the HTTP API and assign recipes to days of a client-side
// weekly plan.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"mealplan/internal/client"
	"mealplan/internal/planner"
)

func main() {
	baseURL := os.Getenv("MEALPLAN_SERVER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:50051"
	}

	api, err := client.New(baseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)

	if err := login(ctx, api, in); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	week := planner.NewWeeklyMealPlan()
	run(ctx, api, in, week)
}

func prompt(in *bufio.Scanner, question string) string {
	fmt.Print(question)
	if !in.Scan() {
		return "q"
	}
	return strings.TrimSpace(in.Text())
}

func login(ctx context.Context, api *client.Client, in *bufio.Scanner) error {
	email := prompt(in, "Email: ")
	password := prompt(in, "Password: ")
	profile, err := api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Printf("\nWelcome back, %s %s!\n", profile.FirstName, profile.LastName)
	return nil
}

func menu() {
	fmt.Println("Enter 'w' to view the current week's plan",
		"\n'c' to view information about a cookbook",
		"\n'r' to view information about a recipe",
		"\n'a' to assign a recipe to a day of the week",
		"\n'q' to quit.")
}

func run(ctx context.Context, api *client.Client, in *bufio.Scanner, week *planner.WeeklyMealPlan) {
	for {
		fmt.Println()
		menu()
		switch prompt(in, "\nWhat would you like to do? ") {
		case "q":
			fmt.Println("Quitting.")
			api.Logout(ctx)
			return
		case "w":
			fmt.Println()
			fmt.Print(week)
		case "a":
			assignRecipe(ctx, api, in, week)
		case "c":
			showCookbook(ctx, api, in)
		case "r":
			showRecipe(ctx, api, in)
		default:
			fmt.Println("\nThat command is unrecognizable. Enter 'q' to quit.")
		}
	}
}

func assignRecipe(ctx context.Context, api *client.Client, in *bufio.Scanner, week *planner.WeeklyMealPlan) {
	var day planner.Day
	for {
		answer := prompt(in, "What day of the week would you like to update? ")
		if answer == "q" {
			fmt.Println("Quitting action.")
			return
		}
		d, err := planner.ParseDay(answer)
		if err == nil {
			day = d
			break
		}
		fmt.Println("Please enter a valid day of the week or 'q' to quit.")
	}

	for {
		recipe := prompt(in, fmt.Sprintf("What recipe would you like to eat on %s? ", day))
		if recipe == "q" {
			fmt.Println("Quitting action.")
			return
		}
		ok, err := api.CheckRecipe(ctx, recipe)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		if ok {
			week.Assign(day, recipe)
			return
		}
		fmt.Println("Please enter a valid recipe name or 'q' to quit.")
	}
}

func showCookbook(ctx context.Context, api *client.Client, in *bufio.Scanner) {
	names, err := api.CookbookNames(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("\nThe following cookbooks are currently in your database:")
	for _, name := range names {
		fmt.Println(name)
	}

	for {
		name := prompt(in, "\nWhich cookbook would you like to learn more about? ")
		if name == "q" {
			fmt.Println("\nQuitting action.")
			return
		}
		info, err := api.CookbookInfo(ctx, name)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		if info.Validity {
			fmt.Printf("\n%s: %s\n", info.CookbookName, info.Message)
			if info.Online {
				fmt.Println("Viewable at:", info.URL)
			}
			for _, recipe := range info.Recipes {
				fmt.Println(recipe)
			}
			return
		}
		fmt.Println("\nPlease enter a valid cookbook name or 'q' to quit.")
	}
}

func showRecipe(ctx context.Context, api *client.Client, in *bufio.Scanner) {
	cookbook := prompt(in, "\nPress enter if you'd like to see all recipes or type in the name of any stored cookbook to view just its recipes: ")
	if cookbook == "q" {
		cookbook = ""
	}
	names, err := api.RecipeNames(ctx, cookbook)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}

	for {
		name := prompt(in, "\nWhich recipe would you like to learn more about? ")
		if name == "q" {
			fmt.Println("Quitting action.")
			return
		}
		info, err := api.RecipeInfo(ctx, name)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		if info.RecipeName != "" {
			fmt.Printf("\n%s comes from %s and serves %d using:\n", info.RecipeName, info.CookbookName, info.Servings)
			for _, ingredient := range info.Ingredients {
				fmt.Println(ingredient)
			}
			return
		}
		fmt.Println("Please enter a valid recipe name or 'q' to quit.")
	}
}
