package seed

type sampleChef struct {
	ChefID   string
	Name     string
	Email    string
	Location string
}

type sampleMeal struct {
	Chef                  sampleChef
	Name                  string
	Image                 string
	Price                 float64
	Category              string
	Ingredients           []string
	Description           string
	EstimatedDeliveryTime int
	Rating                float64
}

var (
	hans    = sampleChef{"chef-001", "Hans Müller", "hans.mueller@example.com", "Berlin"}
	klaus   = sampleChef{"chef-002", "Klaus Schmidt", "klaus.schmidt@example.com", "Munich"}
	franz   = sampleChef{"chef-003", "Franz Weber", "franz.weber@example.com", "Vienna"}
	anna    = sampleChef{"chef-004", "Anna Fischer", "anna.fischer@example.com", "Hamburg"}
	petra   = sampleChef{"chef-005", "Petra Hoffmann", "petra.hoffmann@example.com", "Frankfurt"}
	thomas  = sampleChef{"chef-006", "Thomas Wagner", "thomas.wagner@example.com", "Cologne"}
	helga   = sampleChef{"chef-007", "Helga Klein", "helga.klein@example.com", "Stuttgart"}
	dieter  = sampleChef{"chef-008", "Dieter Zimmermann", "dieter.zimmermann@example.com", "Düsseldorf"}
	ursula  = sampleChef{"chef-009", "Ursula Richter", "ursula.richter@example.com", "Bremen"}
	guenter = sampleChef{"chef-010", "Günter Schäfer", "guenter.schaefer@example.com", "Leipzig"}
	erika   = sampleChef{"chef-011", "Erika Braun", "erika.braun@example.com", "Dresden"}
	markus  = sampleChef{"chef-012", "Markus Wolf", "markus.wolf@example.com", "Hannover"}
)

// Categories used by the storefront filters
var Categories = []string{"Breakfast", "Lunch", "Dinner", "Snacks", "Dessert", "Beverages"}

var sampleMeals = []sampleMeal{
	{
		Chef: hans, Name: "Classic Cheeseburger", Price: 12.99, Category: "Lunch",
		Image:       "https://i.ibb.co/Fk3qt0HW/shine-studio-xg-Aeml2-S7y-U-unsplash.jpg",
		Ingredients: []string{"Beef patty", "Cheddar cheese", "Lettuce", "Tomato", "Brioche bun"},
		Description: "Juicy beef patty with melted cheddar, fresh lettuce, and tomato in a soft brioche bun.",
		EstimatedDeliveryTime: 30, Rating: 4.7,
	},
	{
		Chef: klaus, Name: "Margherita Pizza", Price: 14.5, Category: "Dinner",
		Image:       "https://i.ibb.co/pB9KxJf5/ivan-torres-MQUqbmsz-GGM-unsplash.jpg",
		Ingredients: []string{"Pizza dough", "Tomato sauce", "Fresh mozzarella", "Basil", "Olive oil"},
		Description: "Classic Italian pizza with San Marzano tomatoes, fresh mozzarella, and basil leaves.",
		EstimatedDeliveryTime: 40, Rating: 4.9,
	},
	{
		Chef: franz, Name: "Wiener Schnitzel", Price: 18.9, Category: "Dinner",
		Image:       "https://i.ibb.co/G4RrK55f/fried-chicken-along-with-potatoes-red-tomatoe-inside-white-plate-brown-desk.jpg",
		Ingredients: []string{"Veal", "Breadcrumbs", "Egg", "Flour", "Lemon"},
		Description: "Traditional breaded veal cutlet, fried to golden perfection, served with a slice of lemon.",
		EstimatedDeliveryTime: 35, Rating: 4.8,
	},
	{
		Chef: anna, Name: "Spaghetti Carbonara", Price: 13.5, Category: "Dinner",
		Image:       "https://i.ibb.co/yn6KWX91/top-view-cheesy-pasta-white-plate.jpg",
		Ingredients: []string{"Spaghetti", "Eggs", "Pancetta", "Pecorino Romano", "Black pepper"},
		Description: "Creamy Roman pasta with crispy pancetta and plenty of Pecorino cheese.",
		EstimatedDeliveryTime: 25, Rating: 4.6,
	},
	{
		Chef: petra, Name: "Greek Salad", Price: 8.9, Category: "Snacks",
		Image:       "https://i.ibb.co/d08VvZtp/front-view-greek-salad-lettuce-with-black-olives.jpg",
		Ingredients: []string{"Cucumber", "Tomato", "Feta cheese", "Olives", "Red onion", "Olive oil"},
		Description: "Fresh and healthy salad with creamy feta and Kalamata olives.",
		EstimatedDeliveryTime: 20, Rating: 4.5,
	},
	{
		Chef: thomas, Name: "Chicken Caesar Wrap", Price: 10.5, Category: "Lunch",
		Image:       "https://i.ibb.co/KjFZd36Y/leanna-myers-JMITde3-Ra-EE-unsplash.jpg",
		Ingredients: []string{"Grilled chicken", "Romaine lettuce", "Parmesan", "Caesar dressing", "Flour tortilla"},
		Description: "Grilled chicken with crisp romaine, parmesan, and creamy Caesar dressing wrapped in a tortilla.",
		EstimatedDeliveryTime: 25, Rating: 4.4,
	},
	{
		Chef: helga, Name: "Beef Stroganoff", Price: 16.5, Category: "Dinner",
		Image:       "https://i.ibb.co/zHspJyjt/olivier-amyot-Z49-CUj11-JFk-unsplash.jpg",
		Ingredients: []string{"Beef strips", "Mushrooms", "Onion", "Sour cream", "Egg noodles"},
		Description: "Tender beef in a rich mushroom and sour cream sauce, served over egg noodles.",
		EstimatedDeliveryTime: 40, Rating: 4.7,
	},
	{
		Chef: dieter, Name: "French Onion Soup", Price: 7.5, Category: "Snacks",
		Image:       "https://i.ibb.co/fj4GtSp/leila-issa-5-SWenofm-Kk0-unsplash.jpg",
		Ingredients: []string{"Onions", "Beef broth", "Baguette", "Gruyère cheese"},
		Description: "Rich caramelized onion soup topped with toasted baguette and melted Gruyère.",
		EstimatedDeliveryTime: 20, Rating: 4.6,
	},
	{
		Chef: ursula, Name: "Pancakes with Maple Syrup", Price: 6.99, Category: "Breakfast",
		Image:       "https://i.ibb.co/0j58mrq5/natalia-gusakova-xg-UHBRGTD6w-unsplash-1.jpg",
		Ingredients: []string{"Flour", "Milk", "Eggs", "Butter", "Maple syrup"},
		Description: "Fluffy homemade pancakes served with warm maple syrup and a pat of butter.",
		EstimatedDeliveryTime: 15, Rating: 4.8,
	},
	{
		Chef: guenter, Name: "Vegetable Lasagna", Price: 13.9, Category: "Dinner",
		Image:       "https://i.ibb.co/5g5R2zBp/pexels-daniele-sgura-2571626-4162496.jpg",
		Ingredients: []string{"Lasagna sheets", "Zucchini", "Spinach", "Ricotta", "Marinara sauce", "Mozzarella"},
		Description: "Layers of pasta, fresh vegetables, creamy ricotta, and marinara, topped with mozzarella.",
		EstimatedDeliveryTime: 45, Rating: 4.5,
	},
	{
		Chef: erika, Name: "Apple Strudel", Price: 5.5, Category: "Dessert",
		Image:       "https://i.ibb.co/TDP3hb9W/pexels-polina-kovaleva-5430680.jpg",
		Ingredients: []string{"Puff pastry", "Apples", "Cinnamon", "Sugar", "Raisins"},
		Description: "Traditional German apple strudel with a flaky crust and spiced apple filling.",
		EstimatedDeliveryTime: 25, Rating: 4.9,
	},
	{
		Chef: markus, Name: "Iced Latte", Price: 4.5, Category: "Beverages",
		Image:       "https://i.ibb.co/0pCFrv9f/pexels-luana-ribeiro-44057245-22221946.jpg",
		Ingredients: []string{"Espresso", "Milk", "Ice"},
		Description: "Chilled espresso with creamy milk, served over ice.",
		EstimatedDeliveryTime: 10, Rating: 4.3,
	},
}

var pantry = []string{
	"Chicken", "Beef", "Pork", "Fish", "Tofu", "Cheese", "Tomato", "Lettuce",
	"Onion", "Garlic", "Bread", "Rice", "Pasta", "Egg", "Milk",
}

var dishes = []string{"Stew", "Bowl", "Curry", "Salad", "Soup", "Wrap", "Pie", "Risotto", "Burger", "Tart"}
