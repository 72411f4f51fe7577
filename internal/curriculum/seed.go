package curriculum

// seedLessons returns the built-in lesson table.
func seedLessons() []Lesson {
	return []Lesson{
		// Algebra
		{
			ID:          "alg0",
			Title:       "Stellar Arithmetic",
			Description: "Basic calculations for space navigation",
			Icon:        "🚀",
			Difficulty:  DifficultyBeginner,
			Topic:       TopicAlgebra,
			Problems: []Problem{
				{Question: "A spaceship collects 12 moon rocks on Monday and 15 on Tuesday. How many did it collect total?", Answer: Number(27)},
				{Question: "A rover has 30 energy cells. It uses 18 for a mission. How many are left?", Answer: Number(12)},
				{Question: "An astronaut packs 4 meals per day for a 5-day trip. How many meals total?", Answer: Number(20)},
				{Question: "A satellite orbits Earth 6 times in 24 hours. How many orbits per hour?", Answer: Number(0.25)},
				{Question: "A rocket travels 7 km/hour for 4 hours. How far does it go?", Answer: Number(28), Unit: "km"},
			},
			XPReward: 30,
		},
		{
			ID:          "alg1",
			Title:       "Linear Equations",
			Description: "Solve equations in zero gravity",
			Icon:        "🧮",
			Difficulty:  DifficultyBeginner,
			Topic:       TopicAlgebra,
			Problems: []Problem{
				{Question: "A fuel tank has x + 5 = 12 liters. Find x.", Answer: Number(7)},
				{Question: "If 3 × asteroid weight = 21 kg, what's the weight?", Answer: Number(7), Unit: "kg"},
				{Question: "A spaceship travels 2x = 16 km. Solve for x.", Answer: Number(8), Unit: "km"},
				{Question: "Oxygen tanks: 4x = 20. How many tanks (x)?", Answer: Number(5)},
				{Question: "If x - 3 = 9, what's x?", Answer: Number(12)},
			},
			Prerequisites: []string{"alg0"},
			XPReward:      50,
		},
		{
			ID:          "alg2",
			Title:       "Cosmic Decimals",
			Description: "Navigate asteroid fields with decimal math",
			Icon:        "☄️",
			Difficulty:  DifficultyIntermediate,
			Topic:       TopicAlgebra,
			Problems: []Problem{
				{Question: "A star's temperature rose from 12.5°C to 18.3°C. How much did it increase?", Answer: Number(5.8), Unit: "°C"},
				{Question: "Multiply fuel efficiency: 2.5 × 4", Answer: Number(10)},
				{Question: "Divide 8.4 light-years by 2", Answer: Number(4.2), Unit: "light-years"},
				{Question: "Add spaceship weights: 12.7 + 5.3 tons", Answer: Number(18), Unit: "tons"},
				{Question: "Subtract: 15.0 - 3.75", Answer: Number(11.25)},
			},
			Prerequisites: []string{"alg1"},
			XPReward:      70,
		},
		{
			ID:          "alg3",
			Title:       "Orbital Percentages",
			Description: "Calculate space mission success rates",
			Icon:        "🛰️",
			Difficulty:  DifficultyAdvanced,
			Topic:       TopicAlgebra,
			Problems: []Problem{
				{Question: "If 40% of 50 satellites are active, how many is that?", Answer: Number(20)},
				{Question: "A rocket has 30% fuel left. If the tank holds 200L, how much remains?", Answer: Number(60), Unit: "L"},
				{Question: "Increase 80 by 25% for maximum thrust", Answer: Number(100)},
				{Question: "Find 15% of 120 space rations", Answer: Number(18)},
				{Question: "A planet is 70% water. If its area is 500 km², what's the water area?", Answer: Number(350), Unit: "km²"},
			},
			Prerequisites: []string{"alg2"},
			XPReward:      90,
		},

		// Geometry
		{
			ID:          "geo0",
			Title:       "Space Shapes Basics",
			Description: "Fundamental geometric concepts in zero-G",
			Icon:        "🌠",
			Difficulty:  DifficultyBeginner,
			Topic:       TopicGeometry,
			Problems: []Problem{
				{Question: "How many sides does a pentagon-shaped space station have?", Answer: Number(5)},
				{Question: "A rectangle has lengths of 4 cm and 7 cm. What's its perimeter?", Answer: Number(22), Unit: "cm"},
				{Question: "How many degrees in three right angles?", Answer: Number(270)},
				{Question: "A cube has how many edges?", Answer: Number(12)},
				{Question: "Lines of symmetry in a square?", Answer: Number(4)},
			},
			XPReward: 30,
		},
		{
			ID:          "geo1",
			Title:       "3D Space Shapes",
			Description: "Explore spacecraft geometry",
			Icon:        "🛸",
			Difficulty:  DifficultyBeginner,
			Topic:       TopicGeometry,
			Problems: []Problem{
				{Question: "How many faces does a cube-shaped spaceship have?", Answer: Number(6)},
				{Question: "Edges on a triangular prism?", Answer: Number(9)},
				{Question: "If a sphere's radius is 4m, what's its diameter?", Answer: Number(8), Unit: "m"},
				{Question: "Vertices in a rectangular prism?", Answer: Number(8)},
			},
			Prerequisites: []string{"geo0"},
			XPReward:      50,
		},
		{
			ID:          "geo2",
			Title:       "Cosmic Shapes",
			Description: "Calculate properties of celestial bodies",
			Icon:        "🌌",
			Difficulty:  DifficultyIntermediate,
			Topic:       TopicGeometry,
			Problems: []Problem{
				{Question: "A square solar panel has sides of 5 m. What's its area?", Answer: Number(25), Unit: "m²"},
				{Question: "A circular space window has radius 3 m. What's its diameter?", Answer: Number(6), Unit: "m"},
				{Question: "A rectangular cargo bay is 8 m × 4 m. What's its area?", Answer: Number(32), Unit: "m²"},
				{Question: "A triangle has base 10 m and height 5 m. What's its area?", Answer: Number(25), Unit: "m²"},
				{Question: "Perimeter of an equilateral triangle with 6 cm sides?", Answer: Number(18), Unit: "cm"},
			},
			Prerequisites: []string{"geo1"},
			XPReward:      70,
		},
		{
			ID:          "geo3",
			Title:       "Alien Angles",
			Description: "Measure angles of UFO trajectories",
			Icon:        "👽",
			Difficulty:  DifficultyAdvanced,
			Topic:       TopicGeometry,
			Problems: []Problem{
				{Question: "A spaceship turns 45° left, then 90° right. What's its total rotation?", Answer: Number(45), Unit: "°"},
				{Question: "How many degrees in a straight line?", Answer: Number(180)},
				{Question: "If two angles form a right angle (90°), and one is 35°, what's the other?", Answer: Number(55), Unit: "°"},
				{Question: "An equilateral triangle's angles each measure...?", Answer: Number(60), Unit: "°"},
				{Question: "A reflex angle is greater than ___ degrees?", Answer: Number(180)},
			},
			Prerequisites: []string{"geo2"},
			XPReward:      90,
		},

		// Calculus
		{
			ID:          "calc0",
			Title:       "Space Rates",
			Description: "Basic derivatives for space travel",
			Icon:        "⏱️",
			Difficulty:  DifficultyBeginner,
			Topic:       TopicCalculus,
			Problems: []Problem{
				{Question: "A rocket travels 300 km in 5 hours. What's its speed per hour?", Answer: Number(60), Unit: "km/h"},
				{Question: "A satellite orbits Earth 4 times in 8 hours. How many orbits per hour?", Answer: Number(0.5)},
				{Question: "A probe downloads 120 MB of data in 3 minutes. What's the download rate per minute?", Answer: Number(40), Unit: "MB/min"},
				{Question: "A rover charges its battery at 10% per hour. How long to charge from 0% to 50%?", Answer: Number(5), Unit: "hours"},
				{Question: "A spaceship uses 2 fuel cells per hour. How many cells for 6 hours?", Answer: Number(12)},
			},
			XPReward: 30,
		},
		{
			ID:          "calc1",
			Title:       "Space Patterns",
			Description: "Predict cosmic events with sequences",
			Icon:        "🌌",
			Difficulty:  DifficultyBeginner,
			Topic:       TopicCalculus,
			Problems: []Problem{
				{Question: "Next in sequence: 5, 10, 15, ___", Answer: Number(20)},
				{Question: "If Day 1=2 meteors, Day 2=4, Day 3=6, how many on Day 5?", Answer: Number(10)},
				{Question: "Missing number: 7, 14, ___, 28", Answer: Number(21)},
			},
			Prerequisites: []string{"calc0"},
			XPReward:      60,
		},
		{
			ID:          "calc2",
			Title:       "Black Hole Logic",
			Description: "Solve mysteries with algebraic reasoning",
			Icon:        "🕳️",
			Difficulty:  DifficultyIntermediate,
			Topic:       TopicCalculus,
			Problems: []Problem{
				{Question: "If all robots (R) need 2 batteries, and you have 10 batteries, how many robots can run?", Answer: Number(5)},
				{
					Question: "A spaceship's speed (S) is distance (D) divided by time (T). Write the formula.",
					Answer:   Text("S=D/T"),
					Choices:  []Answer{Text("S=D/T"), Text("S=D×T"), Text("S=T/D"), Text("S=D+T")},
				},
				{Question: "If 3x + 2 = 11, find x", Answer: Number(3)},
				{
					Question: "True or false: 5 × (3 + 1) = 5 × 3 + 5 × 1",
					Answer:   Bool(true),
					Choices:  []Answer{Bool(true), Bool(false)},
				},
			},
			Prerequisites: []string{"calc1"},
			XPReward:      80,
		},
	}
}
