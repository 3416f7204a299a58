package saleor

const shopsQuery = `
query GetShops($first: Int!) {
  shops(first: $first) {
    edges {
      node {
        id
        name
        description
        slug
      }
    }
  }
}`

const productsQuery = `
query GetProducts($first: Int!, $filter: ProductFilterInput) {
  products(first: $first, filter: $filter) {
    edges {
      node {
        id
        name
        description
        slug
        pricing {
          priceRange {
            start {
              gross {
                amount
                currency
              }
            }
          }
        }
      }
    }
  }
}`

const productQuery = `
query GetProduct($id: ID!) {
  product(id: $id) {
    id
    name
    description
    slug
    pricing {
      priceRange {
        start {
          gross {
            amount
            currency
          }
        }
      }
    }
  }
}`

const pingQuery = `
query Ping {
  shops(first: 1) {
    edges {
      node {
        id
      }
    }
  }
}`
