package agrimithra

// DefaultDocuments is the built-in advisory corpus written to an empty
// corpus directory when seeding is enabled.
func DefaultDocuments() []Document {
	docs := make([]Document, 0, len(seedAdvisories)+len(seedGuides))
	docs = append(docs, seedAdvisories...)
	docs = append(docs, seedGuides...)
	return docs
}

var seedAdvisories = []Document{
	// crop disease
	{Title: "Tomato Yellow Spots", Category: CategoryCropDisease, Content: "Yellow spots on tomato leaves often indicate early blight disease. Look for concentric rings in the spots. Treatment includes removing affected leaves, improving air circulation, and applying copper-based fungicides. For organic treatment, use neem oil spray (5ml/liter) every 7-10 days."},
	{Title: "Rice Brown Lesions", Category: CategoryCropDisease, Content: "Brown circular lesions on rice leaves typically indicate Rice Leaf Blight disease caused by Bipolaris oryzae fungus. Control measures include using disease-resistant varieties, balanced fertilization (avoid excess nitrogen), and fungicide application like Propiconazole 25% EC @ 1ml/liter water at early infection stages."},
	{Title: "Powdery Mildew Treatment", Category: CategoryCropDisease, Content: "For powdery mildew on grapes, apply sulfur-based fungicides or potassium bicarbonate sprays. Organic treatment: mix 1 tablespoon baking soda, 1 teaspoon mild soap, and 1 gallon water; spray weekly. Improve air circulation by proper pruning and avoid overhead irrigation to prevent fungal spread."},
	{Title: "Potato Blight Comparison", Category: CategoryCropDisease, Content: "Early blight vs late blight on potatoes: Early blight (Alternaria solani) shows dark brown spots with concentric rings, mainly on lower leaves, spreads slowly. Late blight (Phytophthora infestans) appears as dark, water-soaked spots that quickly turn brown with white fungal growth underneath, spreads rapidly in cool, wet weather."},
	{Title: "Disease Identification", Category: CategoryCropDisease, Content: "Key signs for disease identification: Leaf spots (circular or irregular), lesions (sunken areas), wilting, yellowing patterns, stunted growth, and abnormal fruit development. Photograph symptoms in good lighting, including both affected and healthy parts for comparison. Include close-ups and whole plant views for accurate diagnosis."},
	{Title: "Wilting Analysis", Category: CategoryCropDisease, Content: "Plants wilting in morning but recovering by afternoon often indicate root problems rather than water shortage. This can be caused by Fusarium wilt, nematode damage, or root rot. Check for discoloration in stem vascular tissue. Treatment involves improving drainage, applying beneficial fungi like Trichoderma, and in severe cases, fungicide drenches."},
	{Title: "Disease Spread Rate", Category: CategoryCropDisease, Content: "Disease spread depends on pathogen type, weather conditions, and crop resistance. Fungal diseases like late blight can destroy a field within 7-10 days under humid conditions. Bacterial diseases typically spread moderately (10-14 days). Viral diseases may take 14-21 days to show full symptoms across a field."},
	{Title: "Fungicide Recommendations", Category: CategoryCropDisease, Content: "For early disease stages, contact fungicides (copper oxychloride 50% WP @ 2.5g/liter) provide protection. For established infections, systemic fungicides (Azoxystrobin 23% SC @ 1ml/liter) are more effective. Apply at 7-14 day intervals depending on disease pressure. Always follow manufacturer's dosage and safety instructions."},
	{Title: "Organic Disease Control", Category: CategoryCropDisease, Content: "Organic treatments for leaf spots: Spray compost tea (soak compost in water 1:5 ratio for 24 hours) weekly. Apply milk spray (1 part milk to 9 parts water) for powdery mildew. Garlic-chili spray works for various fungal infections. Beneficial microbes like Bacillus subtilis or Trichoderma viride provide biological control."},
	{Title: "Rainy Season Protection", Category: CategoryCropDisease, Content: "Prevent fungal diseases during rainy season by: 1) Raising beds for better drainage, 2) Wider spacing between plants for air circulation, 3) Mulching to prevent soil splash, 4) Preventive spraying with copper-based fungicides or Trichoderma, 5) Timely weeding to reduce humidity around plants."},

	// market prices
	{Title: "Onion Prices Kochi", Category: CategoryMarketPrices, Content: "As of September 12, 2025, onion prices in Kochi mandi are: Retail ₹45-50/kg, Wholesale ₹35-40/kg. Prices increased by 8% from last week due to reduced arrivals from Maharashtra. Projected trend: likely to remain stable for 7-10 days. Best markets for selling: Ernakulam APMC, Aluva market."},
	{Title: "Paddy Price Comparison", Category: CategoryMarketPrices, Content: "Current paddy prices (September 2025): Palakkad mandi ₹20-22/kg, Thrissur mandi ₹21-23/kg. Thrissur offers better rates due to local mill demand. Transportation cost Palakkad to Thrissur: approximately ₹0.50/kg. Government procurement through Supplyco offers ₹23.30/kg but requires registration and quality standards compliance."},
	{Title: "Potato Price Trends", Category: CategoryMarketPrices, Content: "Monthly potato price trends (per kg): July ₹22-25, August ₹25-28, September ₹28-32. Shows 15% increase over two months. Factors: reduced production in northern states and increased transportation costs. Projection: prices likely to increase another 5-8% by October before new harvest arrives."},
	{Title: "Mango Sales Locations", Category: CategoryMarketPrices, Content: "Best places to sell mangoes near Kerala: 1) Koyambedu Wholesale Market, Chennai - highest volume but 6hr transport, 2) Local farmer markets in Kochi - better prices but limited volume, 3) E-Nam digital marketplace - broader reach but requires registration, 4) Direct to hotels/restaurants - best margins but needs quality sorting."},
	{Title: "Tomato Price Forecast", Category: CategoryMarketPrices, Content: "Tomato price forecast next 7 days: Current ₹40-45/kg expected to decrease to ₹32-35/kg due to new harvests from Karnataka and increased supply. Suggestion: If quality permits, sell immediately rather than holding stock. Alternative: Consider value addition through sun-dried tomatoes or puree for better returns."},

	// weather
	{Title: "Village Rain Forecast", Category: CategoryWeather, Content: "Rain forecast for Kerala villages (September 13-20, 2025): Northern districts - moderate to heavy rainfall (15-20cm cumulative), Central districts - light to moderate rainfall (5-10cm), Southern districts - isolated showers (2-5cm). Daily updates available via KisanSMS service or Krishi Bhavan weather bulletins."},
	{Title: "Seven Day Forecast", Category: CategoryWeather, Content: "7-day forecast for Kerala (September 13-19, 2025): Temperature range 24-32°C, Humidity 75-85%, Wind speed 5-15 km/h from southwest direction. Rainfall expected on 14th, 16th and 18th. No extreme weather alerts. Good conditions for transplanting operations on dry days."},
	{Title: "Spraying Safety Weather", Category: CategoryWeather, Content: "For safe pesticide spraying, optimal conditions are: Wind speed below 10km/h, No rain forecast for next 6 hours, Relative humidity 40-60%, Temperature below 30°C. Based on current forecast, best spraying windows: early mornings of September 13, 15, and 17 (5-8am) when winds are minimal and before temperatures rise."},
	{Title: "Harvesting Weather Suitability", Category: CategoryWeather, Content: "Current weather is suitable for harvesting mature crops. Expected dry period of 3 days (September 13-15) provides good drying conditions. For grain crops, target moisture content: rice 14%, wheat 12%. If unexpected showers occur, use poly sheets for covering harvested produce or utilize community drying yards."},

	// government schemes
	{Title: "Drip Irrigation Subsidies", Category: CategoryGovtSchemes, Content: "Current subsidy schemes for drip irrigation (2025-26): Under PMKSY, small/marginal farmers receive 55% subsidy, others 45%. Maximum coverage 5 hectares per farmer. Kerala state adds 35% additional subsidy. Apply through Krishi Bhavan with land documents, bank details, and Aadhaar. Subsidy credited directly to bank account after installation verification."},
	{Title: "PMFBY Insurance Application", Category: CategoryGovtSchemes, Content: "To apply for PMFBY crop insurance in your district: 1) Visit local bank or Common Service Center, 2) Submit application form with land records, sowing certificate, and ID proof, 3) Pay premium (only 1.5-2% of sum insured), 4) Online tracking available at pmfby.gov.in using application number. Deadline for Kharif 2025: July 31, for Rabi: December 15."},
	{Title: "Tractor Subsidy Eligibility", Category: CategoryGovtSchemes, Content: "Tractor subsidy eligibility: Minimum 2 hectares land holding, active farming for past 3 years, no tractor purchased under subsidy in past 10 years. Documents needed: Land ownership/lease papers, bank account linked to Aadhaar, income certificate, caste certificate (if applicable), quotation from authorized dealer. Subsidy ranges from 25-40% depending on category and horsepower."},
	{Title: "Kerala Micro-irrigation Scheme", Category: CategoryGovtSchemes, Content: "Latest micro-irrigation scheme in Kerala: 'Haritha Keralam' offers 90% subsidy with maximum amount of ₹1,40,000 per hectare. Covers drip, sprinkler, and raingun systems. Implemented through Krishi Bhavans. Priority to watershed areas and water-scarce regions. Application involves technical evaluation and site inspection. Contact: Agricultural Officer at local Krishi Bhavan."},

	// fertilizers
	{Title: "Paddy Fertilizer Dosage", Category: CategoryFertilizers, Content: "Recommended fertilizer per acre for paddy: Basal application - DAP 40kg, MOP 20kg. First top dressing (30 days after planting) - Urea 35kg. Second top dressing (60 days) - Urea 35kg, MOP 10kg. Apply when field has thin layer of water. For zinc deficiency, add zinc sulfate 10kg/acre during land preparation."},
	{Title: "Soil Test Fertilizer Guide", Category: CategoryFertilizers, Content: "For soil test showing low nitrogen: Apply 50% more than standard recommendation. For paddy, increase urea by 50kg/acre split in two applications. Combine with organic sources like FYM (2 tonnes/acre) or vermicompost (1 tonne/acre). Green manuring with dhaincha or sunhemp before planting improves soil nitrogen significantly."},
	{Title: "Maize Fertilizer Schedule", Category: CategoryFertilizers, Content: "Time schedule for maize fertilization: 1) Basal dose at sowing: Full dose of phosphorus (DAP 100kg/ha) and potassium (MOP 50kg/ha), 1/4th of nitrogen (Urea 50kg/ha), 2) First top dressing at knee-high stage (25-30 days): 1/2 of nitrogen (Urea 100kg/ha), 3) Second top dressing at tasseling (45-50 days): remaining nitrogen (Urea 50kg/ha)."},
	{Title: "Coconut Palm Fertilizer", Category: CategoryFertilizers, Content: "Recommended fertilizer for adult coconut palm (per tree annually): Urea 1.3kg, Super Phosphate 2kg, Muriate of Potash 3.5kg. Apply in two equal splits during June-July and December-January. Make a circular trench 1.5m away from trunk, 25cm wide and 25cm deep. Mix fertilizers with well-decomposed organic manure (20-30kg/tree) for best results."},

	// pest control
	{Title: "Cotton Aphid Treatment", Category: CategoryPestControl, Content: "For aphid infestation on cotton: Early stage - spray neem oil 5ml/liter with 1ml soap as sticker. Moderate infestation - apply imidacloprid 17.8% SL @ 0.25ml/liter or thiamethoxam 25% WG @ 0.2g/liter. Severe cases - flonicamid 50% WG @ 0.3g/liter. Spray during evening hours for better efficacy. Repeat after 10-15 days if needed."},
	{Title: "Sugarcane Borer Management", Category: CategoryPestControl, Content: "Best IPM for stem borer in sugarcane: 1) Cut and destroy dead hearts (showing 'bunchy top'), 2) Release Trichogramma chilonis @ 50,000/ha 4-6 times at 15-day intervals starting 45 days after planting, 3) Apply Beauveria bassiana 1.15% WP @ 2kg/ha, 4) In severe cases, spray chlorantraniliprole 18.5% SC @ 0.4ml/liter targeting the base of plants."},
	{Title: "Safe Vegetable Pesticides", Category: CategoryPestControl, Content: "Safe pesticides for leaf-eating caterpillars on vegetables: Bacillus thuringiensis (Bt) @ 1-2g/liter - fully safe, can be harvested same day. Spinosad 45% SC @ 0.3ml/liter - moderately safe, 3-day waiting period. Novaluron 10% EC @ 1ml/liter - safer than conventional chemicals, 5-day waiting period. Always spray in evening to protect pollinators."},
	{Title: "Homemade Neem Spray", Category: CategoryPestControl, Content: "Neem spray recipe: Soak 5kg neem seeds overnight in water. Grind into paste next morning. Mix paste in 100 liters water with 100-200ml soap solution as sticker. Alternatively, mix 40-50ml commercial neem oil with 10-20ml liquid soap in 1 liter water, then dilute to 10 liters. Spray uniformly on both sides of leaves during early morning or late evening."},
}

var seedGuides = []Document{
	{
		Title:    "Rice (Paddy)",
		Category: CategoryCropGuide,
		Guide: &Guide{
			Summary:   "Rice is the primary staple food crop in South India. Proper management of nutrients, water, and pests is crucial for a high yield.",
			Varieties: "Popular Kerala varieties include Uma, Jyothi, Kanchana, and high-yield hybrids.",
			Fertilizer: &Fertilizer{
				Organic:  "Basal dose: Apply farmyard manure (FYM) or compost at 5 tonnes/ha before the last ploughing. Green leaf manure at 5 tonnes/ha is also recommended.",
				Chemical: "Recommended NPK dosage is 90:45:45 kg/ha. For hybrids, it may be 120:60:60 kg/ha.",
				Schedule: "Apply the full dose of Phosphorus (P) and Potassium (K) as a basal dressing. Apply Nitrogen (N) in three split doses: 50% as basal, 25% at the active tillering stage, and 25% at the panicle initiation stage.",
			},
			Pests: []Remedy{
				{Name: "Brown Planthopper", Solution: "Maintain a 2-5 cm water level. Avoid excessive nitrogen. Use pest-resistant varieties. For severe attacks, spray insecticides like imidacloprid."},
				{Name: "Stem Borer", Solution: "Use pheromone traps to monitor moth activity. Apply cartap hydrochloride or fipronil granules 20-25 days after transplanting."},
			},
			Diseases: []Remedy{
				{Name: "Rice Blast", Solution: "Use resistant varieties. Apply fungicides containing tricyclazole. Avoid excessive nitrogen fertilizer."},
				{Name: "Bacterial Blight", Solution: "Ensure proper drainage. Spray copper-based bactericides like copper oxychloride during the early stages of infection."},
			},
		},
	},
	{
		Title:    "Coconut",
		Category: CategoryCropGuide,
		Guide: &Guide{
			Summary:   "Coconut is the 'kalpavriksha' (tree of heaven) and a vital commercial crop. It requires balanced nutrition for continuous bearing.",
			Varieties: "West Coast Tall (WCT), Dwarf varieties (Chowghat Orange Dwarf), and hybrids like Kerasankara (WCT x COD).",
			Fertilizer: &Fertilizer{
				Organic:  "Apply 25-50 kg of FYM or compost per palm per year in a basin around the trunk.",
				Chemical: "Recommended NPK dosage for a mature palm is 500:300:1200 grams/palm/year. Also apply Magnesium Sulphate at 500 grams/palm/year.",
				Schedule: "Apply fertilizers in two split doses: one-third at the beginning of the Southwest monsoon (May-June) and two-thirds at the end of the monsoon (Sept-Oct).",
			},
			Pests: []Remedy{
				{Name: "Rhinoceros Beetle", Solution: "Fill the top 2-3 leaf axils with a mix of sand and neem cake. Use pheromone traps to capture adult beetles."},
				{Name: "Red Palm Weevil", Solution: "Avoid creating wounds on the palm trunk. If detected, inject the trunk with spinosad or imidacloprid. Use pheromone traps for monitoring and mass trapping."},
			},
			Diseases: []Remedy{
				{Name: "Bud Rot", Solution: "Fatal fungal disease. Remove and burn the infected palm. Apply Bordeaux mixture paste to the crowns of surrounding palms as a preventive measure."},
				{Name: "Root Wilt", Solution: "Complex disease with no cure. Manage by improving soil health with organic manures and balanced nutrition to help the palm cope."},
			},
		},
	},
	{
		Title:    "Banana (Plantain)",
		Category: CategoryCropGuide,
		Guide: &Guide{
			Summary:   "Banana is a key fruit crop, with varieties like Nendran being a staple. It is a heavy feeder and requires significant nutrients and water.",
			Varieties: "Nendran (Plantain), Robusta, Palayankodan, Rasakadali.",
			Fertilizer: &Fertilizer{
				Organic:  "Apply 10-15 kg of FYM or compost per plant at the time of planting.",
				Chemical: "Recommended NPK dosage is 190:115:300 grams/plant. Potash (K) is crucial for bunch development.",
				Schedule: "Apply N and K in 4-5 split doses at 2, 3, 4, 5, and 6 months after planting. Full P is applied as a basal dose.",
			},
			Pests: []Remedy{
				{Name: "Rhizome Weevil", Solution: "Use healthy, weevil-free suckers for planting. Apply neem cake at the base of the plant."},
				{Name: "Aphids", Solution: "Aphids transmit the Bunchy Top Virus. Spray a systemic insecticide like dimethoate on the leaves, especially the crown."},
			},
			Diseases: []Remedy{
				{Name: "Sigatoka Leaf Spot", Solution: "Fungal disease causing yellow streaks on leaves. Remove and destroy infected leaves. Spray fungicides like propiconazole or mancozeb."},
				{Name: "Bunchy Top Virus", Solution: "No cure. Infected plants must be uprooted and destroyed immediately to prevent spread. Control the aphid vector."},
			},
		},
	},
}
