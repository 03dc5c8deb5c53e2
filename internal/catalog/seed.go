package catalog

// SeedExercise is a raw built-in exercise; the text-processing service
// derives the typeable fields before it is stored.
type SeedExercise struct {
	ID       string
	Language string
	Name     string
	Code     string
}

// SeedExercises returns the built-in exercise snippets
func (c *Catalog) SeedExercises() []SeedExercise {
	return []SeedExercise{
		{
			ID:       "go-hello",
			Language: "go",
			Name:     "Hello, World",
			Code: `package main

import "fmt"

// Entry point
func main() {
	fmt.Println("Hello, World")
}
`,
		},
		{
			ID:       "go-fib",
			Language: "go",
			Name:     "Fibonacci",
			Code: `package main

// fib returns the nth Fibonacci number
func fib(n int) int {
	if n < 2 {
		return n
	}
	return fib(n-1) + fib(n-2)
}
`,
		},
		{
			ID:       "python-fizzbuzz",
			Language: "python",
			Name:     "FizzBuzz",
			Code: `# Classic FizzBuzz
for i in range(1, 101):
    if i % 15 == 0:
        print("FizzBuzz")
    elif i % 3 == 0:
        print("Fizz")
    elif i % 5 == 0:
        print("Buzz")
    else:
        print(i)
`,
		},
		{
			ID:       "javascript-map",
			Language: "javascript",
			Name:     "Map and Filter",
			Code: `// Double the evens
const doubled = numbers
  .filter((n) => n % 2 === 0)
  .map((n) => n * 2);

console.log(doubled);
`,
		},
	}
}
