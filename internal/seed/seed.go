package seed

import (
	"context"

	"kiosk/internal/domain"
	"kiosk/internal/repository"
)

// Ensure наполняет пустой каталог товарами по умолчанию; непустой не трогает
func Ensure(ctx context.Context, repo repository.ProductRepository) error {
	existing, err := repo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, p := range Products() {
		cp := p
		if err := repo.Create(ctx, &cp); err != nil {
			return err
		}
	}
	return nil
}

// Products каталог киоска по умолчанию
func Products() []domain.Product {
	return []domain.Product{
		// Grains
		{Name: "Rice", Price: 50.00, Category: "Grains", Image: "/images/rice.jpg", Description: "High-quality premium rice grown locally", Stock: 50},
		{Name: "Wheat", Price: 45.00, Category: "Grains", Image: "/images/wheat.jpg", Description: "Organic whole wheat for healthy meals", Stock: 40},
		{Name: "Barley", Price: 40.00, Category: "Grains", Image: "/images/barley.jpg", Description: "Nutritious barley for soups and stews", Stock: 30},
		{Name: "Oats", Price: 60.00, Category: "Grains", Image: "/images/oats.jpg", Description: "Rolled oats for a healthy breakfast", Stock: 45},
		{Name: "Corn", Price: 35.00, Category: "Grains", Image: "/images/corn.jpg", Description: "Fresh sweet corn kernels", Stock: 55},
		{Name: "Millet", Price: 55.00, Category: "Grains", Image: "/images/millet.jpg", Description: "Nutritious millet for a healthy diet", Stock: 25},

		// Pulses
		{Name: "Moong Dal", Price: 65.00, Category: "Pulses", Image: "/images/moong.jpg", Description: "Protein-rich moong dal for everyday meals", Stock: 35},
		{Name: "Chana Dal", Price: 60.00, Category: "Pulses", Image: "/images/chana.jpg", Description: "Premium quality chana dal for delicious recipes", Stock: 30},
		{Name: "Toor Dal", Price: 70.00, Category: "Pulses", Image: "/images/toor.jpg", Description: "Split pigeon peas for traditional dishes", Stock: 40},
		{Name: "Urad Dal", Price: 75.00, Category: "Pulses", Image: "/images/urad.jpg", Description: "Black gram dal for south Indian dishes", Stock: 25},
		{Name: "Rajma", Price: 80.00, Category: "Pulses", Image: "/images/rajma.jpg", Description: "Kidney beans for rajma curry", Stock: 30},
		{Name: "Chickpeas", Price: 55.00, Category: "Pulses", Image: "/images/chickpeas.jpg", Description: "Whole chickpeas for curries and salads", Stock: 45},

		// Vegetables
		{Name: "Potatoes", Price: 30.00, Category: "Vegetables", Image: "/images/potatoes.jpg", Description: "Fresh farm potatoes harvested daily", Stock: 60},
		{Name: "Tomatoes", Price: 40.00, Category: "Vegetables", Image: "/images/tomatoes.jpg", Description: "Juicy red tomatoes from organic farms", Stock: 45},
		{Name: "Onions", Price: 35.00, Category: "Vegetables", Image: "/images/onions.jpg", Description: "Fresh red onions for daily cooking", Stock: 70},
		{Name: "Carrots", Price: 45.00, Category: "Vegetables", Image: "/images/carrots.jpg", Description: "Crunchy carrots rich in vitamins", Stock: 50},
		{Name: "Cauliflower", Price: 35.00, Category: "Vegetables", Image: "/images/cauliflower.jpg", Description: "Farm-fresh cauliflower", Stock: 30},
		{Name: "Spinach", Price: 25.00, Category: "Vegetables", Image: "/images/spinach.jpg", Description: "Leafy green spinach packed with nutrients", Stock: 40},
		{Name: "Okra", Price: 40.00, Category: "Vegetables", Image: "/images/okra.jpg", Description: "Fresh lady fingers for traditional dishes", Stock: 35},
		{Name: "Eggplant", Price: 30.00, Category: "Vegetables", Image: "/images/eggplant.jpg", Description: "Purple eggplants for various recipes", Stock: 25},

		// Fruits
		{Name: "Apples", Price: 120.00, Category: "Fruits", Image: "/images/apples.jpg", Description: "Crisp and sweet apples from the mountains", Stock: 25},
		{Name: "Bananas", Price: 60.00, Category: "Fruits", Image: "/images/bananas.jpg", Description: "Ripe yellow bananas, perfect for snacking", Stock: 40},
		{Name: "Oranges", Price: 80.00, Category: "Fruits", Image: "/images/oranges.jpg", Description: "Juicy oranges rich in vitamin C", Stock: 30},
		{Name: "Mangoes", Price: 150.00, Category: "Fruits", Image: "/images/mangoes.jpg", Description: "Sweet alphonso mangoes, the king of fruits", Stock: 20},
		{Name: "Grapes", Price: 90.00, Category: "Fruits", Image: "/images/grapes.jpg", Description: "Sweet seedless grapes in bunches", Stock: 35},
		{Name: "Watermelon", Price: 70.00, Category: "Fruits", Image: "/images/watermelon.jpg", Description: "Refreshing watermelon for hot summer days", Stock: 15},
		{Name: "Pineapple", Price: 100.00, Category: "Fruits", Image: "/images/pineapple.jpg", Description: "Sweet and tangy pineapple", Stock: 20},
		{Name: "Pomegranate", Price: 130.00, Category: "Fruits", Image: "/images/pomegranate.jpg", Description: "Ruby red pomegranate, full of antioxidants", Stock: 25},

		// Dairy
		{Name: "Milk", Price: 55.00, Category: "Dairy", Image: "/images/milk.jpg", Description: "Fresh cow's milk, pasteurized and healthy", Stock: 30},
		{Name: "Yogurt", Price: 40.00, Category: "Dairy", Image: "/images/yogurt.jpg", Description: "Creamy yogurt made from fresh milk", Stock: 20},
		{Name: "Cheese", Price: 120.00, Category: "Dairy", Image: "/images/cheese.jpg", Description: "Sliced cheese for sandwiches and snacks", Stock: 15},
		{Name: "Butter", Price: 60.00, Category: "Dairy", Image: "/images/butter.jpg", Description: "Creamy butter for cooking and spreading", Stock: 25},
		{Name: "Paneer", Price: 80.00, Category: "Dairy", Image: "/images/paneer.jpg", Description: "Fresh cottage cheese for Indian dishes", Stock: 20},
		{Name: "Ghee", Price: 250.00, Category: "Dairy", Image: "/images/ghee.jpg", Description: "Pure clarified butter for traditional cooking", Stock: 15},
	}
}
