package service

import (
	"strings"

	"github.com/localconnect/localconnect-backend/internal/app/model"
)

// yelpCategoryTags maps each app category to the provider tag list sent
// with a filtered search.
var yelpCategoryTags = map[model.Category]string{
	model.CategoryFood:     "restaurants,food,coffee,cafes,bakeries,bars,nightlife,desserts,icecream,pizza,sandwiches,breakfast_brunch,burgers,mexican,italian,chinese,thai,japanese,sushi,korean,vietnamese,indian",
	model.CategoryRetail:   "shopping,fashion,shoppingcenters,departmentstores,outlet_stores,vintage,thriftstores,bookstores,electronics,homedecor,furniture,jewelry,cosmetics,drugstores,convenience,grocery,flowers,petstore,toys,sportgoods,bicycles,arts_crafts",
	model.CategoryServices: "homeservices,auto,beautysvc,hair,spas,massage,barbers,nails,skincare,makeupartists,tattooparlors,dentists,lawyers,accountants,realestate,photographers,eventservices,florists,pet_services,gyms,fitness,yoga,pilates,mobilephonerepair,dryclean,laundry,locksmiths,plumbing,electricians,contractors",
}

// Keyword tests run Food first, then Retail; Services is the catch-all,
// not a keyword test.
var (
	foodKeywords = []string{
		"restaurant", "food", "cafe", "coffee", "bakeries", "bar",
		"dessert", "pizza", "sandwich",
	}
	retailKeywords = []string{
		"shopping", "retail", "store", "shop", "boutique", "market",
		"pharmacy", "drugstore", "grocery", "bookstore", "electronics",
		"fashion", "jewelry", "furniture", "flowers",
	}
)

// classifyCategory buckets a provider record into exactly one app
// category based on its category aliases.
func classifyCategory(aliases []string) model.Category {
	for _, alias := range aliases {
		for _, keyword := range foodKeywords {
			if strings.Contains(alias, keyword) {
				return model.CategoryFood
			}
		}
	}
	for _, alias := range aliases {
		for _, keyword := range retailKeywords {
			if strings.Contains(alias, keyword) {
				return model.CategoryRetail
			}
		}
	}
	return model.CategoryServices
}
